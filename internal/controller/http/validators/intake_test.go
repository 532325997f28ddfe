package validators_test

import (
	"strings"
	"testing"

	"github.com/Egor213/Sawmill/internal/controller/http/validators"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Timestamp string  `json:"@timestamp" validate:"required"`
	Host      string  `json:"host" validate:"required,max=5"`
	Message   *string `json:"message"`
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		in      sample
		wantErr string
	}{
		{"valid", sample{Timestamp: "2021-01-01", Host: "h1"}, ""},
		{"missing timestamp", sample{Host: "h1"}, "@timestamp must be specified"},
		{"host too long", sample{Timestamp: "2021-01-01", Host: strings.Repeat("h", 6)}, "host must be at most 5 characters"},
		{"several fields", sample{}, "@timestamp must be specified; host must be specified"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validators.Validate(tc.in)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}
