package main

// General API documentation for swaggo. Regenerate docs/ with
// `swag init -g cmd/askrelay/docs.go -o docs --dir ./,./internal/httpapi,./pkg/types`.
//
// @title           askrelay API
// @version         1.0
// @description     Relay for a hosted scoring endpoint and the scorer that serves a fine-tuned adapter.
//
// @contact.name   askrelay maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
