// Package command turns decoded request frames into typed commands and
// executes them against a Backend.
//
// A request is an Array whose first element is a BulkString naming the
// command. Parse validates the name and arity, converts every argument to
// its Go type and returns a Command that can always be executed:
//
//	cmd, err := command.Parse(frame)
//	if err != nil {
//	    // errors.Is(err, command.ErrInvalidArgs) ...
//	}
//	reply := cmd.Execute(store)
//
// Supported commands: GET, SET, HGET, HSET, HGETALL, HMGET, ECHO. Any other
// name parses to Unrecognized, which replies OK without side effects.
package command
