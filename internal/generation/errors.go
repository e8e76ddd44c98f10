package generation

import "fmt"

// UserMessage is the only failure text shown to users; details go to the log
const UserMessage = "Encountered a connection error or API limit. Please verify your API Key and try again."

// BatchError reports the region whose call aborted a batch
type BatchError struct {
	Region string
	Index  int
	Total  int
	Cause  error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("generation failed for region %s (%d of %d): %v", e.Region, e.Index+1, e.Total, e.Cause)
}

func (e *BatchError) Unwrap() error {
	return e.Cause
}

// UserFacing returns the message to display for err, or "" when err is nil
func UserFacing(err error) string {
	if err == nil {
		return ""
	}
	return UserMessage
}
