package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "version flag", args: []string{"--version"}, want: "dev"},
		{name: "help flag", args: []string{"--help"}, want: "conditions"},
		{name: "unknown command", args: []string{"bogus"}, wantErr: true},
		{name: "too many args", args: []string{"conditions", "a", "b"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			rootCmd.SetArgs(tt.args)
			rootCmd.SetOut(&stdout)
			rootCmd.SetErr(&stderr)

			err := rootCmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Contains(t, stdout.String(), tt.want)
		})
	}
}
