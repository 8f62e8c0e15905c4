package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPick(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		names []string
		want  []string
	}{
		{
			name:  "separate value",
			args:  []string{"-c", "conf.json", "-a", "http://x"},
			names: []string{"-c"},
			want:  []string{"-c", "conf.json"},
		},
		{
			name:  "equals form",
			args:  []string{"--config=alt.json", "-a", "http://x"},
			names: []string{"-c", "--config"},
			want:  []string{"--config=alt.json"},
		},
		{
			name:  "order preserved",
			args:  []string{"-r", "3", "-x", "1", "-t", "60"},
			names: []string{"-t", "-r"},
			want:  []string{"-r", "3", "-t", "60"},
		},
		{
			name:  "unknown flags dropped",
			args:  []string{"-x", "1", "--y=2", "positional"},
			names: []string{"-c"},
			want:  []string{},
		},
		{
			name:  "trailing flag without value",
			args:  []string{"-c"},
			names: []string{"-c"},
			want:  []string{"-c"},
		},
		{
			name:  "next arg is a flag",
			args:  []string{"-c", "-d", "lib.db"},
			names: []string{"-c"},
			want:  []string{"-c"},
		},
		{
			name:  "value with dashes in equals form",
			args:  []string{"--config=--odd.json"},
			names: []string{"--config"},
			want:  []string{"--config=--odd.json"},
		},
		{
			name:  "empty input",
			args:  nil,
			names: []string{"-c"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pick(tt.args, tt.names...))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "a.json", ConfigPath([]string{"-c", "a.json"}))
	assert.Equal(t, "b.json", ConfigPath([]string{"-a", "http://x", "-config", "b.json"}))
	assert.Equal(t, "c.json", ConfigPath([]string{"-config=c.json"}))
	assert.Equal(t, "", ConfigPath([]string{"-a", "http://x"}))
}
