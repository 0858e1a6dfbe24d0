package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Filter(t *testing.T) {
	server := NewSet([]string{"-a", "-s", "-t", "-store"}, "-cache-ttl")

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "value flags keep their values",
			args: []string{"-a", ":8000", "-x", "1", "-store", "sqlite"},
			want: []string{"-a", ":8000", "-store", "sqlite"},
		},
		{
			name: "inline values",
			args: []string{"-s=secret", "-y=2", "-t=5"},
			want: []string{"-s=secret", "-t=5"},
		},
		{
			name: "double dash form",
			args: []string{"--store", "memory", "--s=secret"},
			want: []string{"--store", "memory", "--s=secret"},
		},
		{
			name: "bool flag does not swallow a positional",
			args: []string{"-cache-ttl", "positional", "-a", ":9000"},
			want: []string{"-cache-ttl", "-a", ":9000"},
		},
		{
			name: "bool flag with inline value",
			args: []string{"-cache-ttl=false"},
			want: []string{"-cache-ttl=false"},
		},
		{
			name: "flag followed by another flag gets no value",
			args: []string{"-s", "-t", "5"},
			want: []string{"-s", "-t", "5"},
		},
		{
			name: "trailing flag without value",
			args: []string{"-a"},
			want: []string{"-a"},
		},
		{
			name: "positionals and foreign flags dropped",
			args: []string{"serve", "-c", "conf.json", "--verbose"},
			want: []string{},
		},
		{
			name: "repeated flag preserved in order",
			args: []string{"-t", "1", "-t", "2"},
			want: []string{"-t", "1", "-t", "2"},
		},
		{
			name: "empty args",
			args: nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, server.Filter(tt.args))
		})
	}
}

func TestFilterArgs(t *testing.T) {
	got := FilterArgs([]string{"-c", "conf.json", "-a", "localhost"}, []string{"-c", "-config"})
	assert.Equal(t, []string{"-c", "conf.json"}, got)

	got = FilterArgs([]string{"-config=--weird.json"}, []string{"-config"})
	assert.Equal(t, []string{"-config=--weird.json"}, got)
}

func TestConfigPath(t *testing.T) {
	t.Run("short -c with value", func(t *testing.T) {
		assert.Equal(t, "/path/short.json", ConfigPath([]string{"-c", "/path/short.json"}))
	})

	t.Run("long -config inline", func(t *testing.T) {
		assert.Equal(t, "/path/long.json", ConfigPath([]string{"-a", ":1", "-config=/path/long.json"}))
	})

	t.Run("nothing given", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "")
		assert.Empty(t, ConfigPath([]string{"-x", "1"}))
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "/path/env.json")
		assert.Equal(t, "/path/env.json", ConfigPath(nil))
	})

	t.Run("flag wins over env", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "/path/env.json")
		assert.Equal(t, "/path/flag.json", ConfigPath([]string{"-c", "/path/flag.json"}))
	})

	t.Run("last one wins", func(t *testing.T) {
		assert.Equal(t, "/path/2.json", ConfigPath([]string{"-c", "/path/1.json", "-config", "/path/2.json"}))
	})
}
