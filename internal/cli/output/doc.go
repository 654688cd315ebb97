// Package output renders reply frames for respkv-cli.
//
//   - raw: redis-cli style text ("OK", "(nil)", numbered array items)
//   - json: frames mapped to JSON values
//   - yaml: the same values as YAML
package output
