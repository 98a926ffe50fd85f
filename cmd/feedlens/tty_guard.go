package main

import (
	"os"
	"strings"
)

// init runs before lipgloss or glamour look at the terminal. Background
// color detection writes OSC/DSR queries to the terminal, which corrupts
// output that is piped or captured. Non-interactive invocations set CI=1,
// which termenv treats as "do not probe".
func init() {
	if os.Getenv("CI") != "" {
		return
	}
	if !shouldSuppressTTYQueries(os.Args[1:], os.Getenv("FEEDLENS_TEST_MODE") != "") {
		return
	}
	_ = os.Setenv("CI", "1")
}

func shouldSuppressTTYQueries(args []string, envTest bool) bool {
	if envTest {
		return true
	}
	for _, arg := range args {
		if strings.HasPrefix(arg, "--plain") {
			return true
		}
		switch arg {
		case "version", "--version", "--help", "-h", "help":
			return true
		}
	}
	return false
}
