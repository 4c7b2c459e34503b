package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsProtectedKeyspace(t *testing.T) {
	tests := []struct {
		keyspace string
		want     bool
	}{
		{keyspace: "system", want: true},
		{keyspace: "system_schema", want: true},
		{keyspace: "system_auth", want: true},
		{keyspace: "system_distributed", want: true},
		{keyspace: "system_traces", want: true},
		{keyspace: "OpsCenter", want: true},
		{keyspace: "opscenter", want: false},
		{keyspace: "orders", want: false},
		{keyspace: "", want: false},
		{keyspace: " system", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.keyspace, func(t *testing.T) {
			assert.Equal(t, tt.want, IsProtectedKeyspace(tt.keyspace))
		})
	}
}

func TestSelectsAllKeyspaces(t *testing.T) {
	assert.True(t, SelectsAllKeyspaces("all"))
	assert.True(t, SelectsAllKeyspaces(" ALL "))
	assert.False(t, SelectsAllKeyspaces(""))
	assert.False(t, SelectsAllKeyspaces("all,ks1"))
	assert.False(t, SelectsAllKeyspaces("ks1"))
}
