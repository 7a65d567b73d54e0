package hierarchy

// Decorator rewrites a message before it reaches a logger's sinks.
type Decorator func(loggerName, message string) string

// DefaultDecorator prefixes message with "[loggerName] ". Empty messages and
// messages already starting with "[" are returned unchanged, so forwarding a
// decorated message through ancestors never stacks prefixes.
func DefaultDecorator(loggerName, message string) string {
	if message == "" || message[0] == '[' {
		return message
	}
	return "[" + loggerName + "] " + message
}
