package command_test

import (
	"testing"
	"time"

	appcommand "github.com/0xsj/overwatch-mastermind/internal/app/command"
)

func TestRetryConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*appcommand.RetryConfig)
		wantErr bool
	}{
		{"defaults", func(*appcommand.RetryConfig) {}, false},
		{"single try", func(c *appcommand.RetryConfig) { c.MaxTries = 1 }, false},
		{"zero tries", func(c *appcommand.RetryConfig) { c.MaxTries = 0 }, true},
		{"negative tries", func(c *appcommand.RetryConfig) { c.MaxTries = -1 }, true},
		{"zero initial interval", func(c *appcommand.RetryConfig) { c.InitialInterval = 0 }, true},
		{"max below initial", func(c *appcommand.RetryConfig) { c.MaxInterval = time.Millisecond }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := appcommand.DefaultRetryConfig()
			tt.modify(&config)

			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
