package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			"separate value",
			[]string{"-a", ":8080", "-d", "dsn"},
			[]string{"-a"},
			[]string{"-a", ":8080"},
		},
		{
			"equals form",
			[]string{"--config=conf.json", "-x", "1"},
			[]string{"--config"},
			[]string{"--config=conf.json"},
		},
		{
			"value looking like flag is not consumed",
			[]string{"-a", "-d"},
			[]string{"-a", "-d"},
			[]string{"-a", "-d"},
		},
		{
			"nothing allowed",
			[]string{"-a", "1"},
			nil,
			[]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}
