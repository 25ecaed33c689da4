package config

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, channelID string) *Slack {
	return &Slack{
		botToken:  botToken,
		channelID: channelID,
	}
}

// NewJiraForTest creates a Jira config for testing purposes
func NewJiraForTest(domain, username, apiToken, baseURL string) *Jira {
	return &Jira{
		domain:   domain,
		username: username,
		apiToken: apiToken,
		baseURL:  baseURL,
	}
}

// NewStateForTest creates a State config for testing purposes
func NewStateForTest(backend, path string) *State {
	return &State{
		backend: backend,
		path:    path,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string, verbose bool) *Logger {
	return &Logger{
		level:   level,
		format:  format,
		output:  output,
		verbose: verbose,
	}
}

// ParseLogLevel is exported for testing
var ParseLogLevel = parseLogLevel
