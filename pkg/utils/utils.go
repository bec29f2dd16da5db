package utils

import (
	"fmt"
	"log"
	"time"
)

// GoSafe runs the given function in a new goroutine and recovers from any panic.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Panic Recovered] %v", r)
			}
		}()
		fn()
	}()
}

// PrettyDate formats a timestamp for user-facing messages.
func PrettyDate(date time.Time) string {
	return fmt.Sprintf("%02d %s %d - %02d:%02d UTC",
		date.UTC().Day(),
		date.UTC().Month().String()[:3],
		date.UTC().Year(),
		date.UTC().Hour(),
		date.UTC().Minute(),
	)
}
