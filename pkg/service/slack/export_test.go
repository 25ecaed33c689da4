package slack

// TestWithAPIURL is exported for testing
var TestWithAPIURL = WithAPIURL
