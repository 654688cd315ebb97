// Package redisserver provides the RESP TCP server of respkv.
//
// Each accepted connection runs in its own goroutine and processes frames
// strictly in order: decode one frame, execute it, write and flush the
// reply, then decode the next. Bytes may arrive in arbitrary chunks;
// partial frames stay buffered until complete.
//
// Error handling per connection:
//   - invalid command (bad arity, argument type, UTF-8): "-ERR <message>",
//     the connection stays open
//   - malformed frame: "-ERR Protocol error: <message>", then close
//   - EOF, timeouts and socket errors: close without reply
//
// PING and QUIT are answered by the connection itself. Every other request
// goes through the command package.
package redisserver
