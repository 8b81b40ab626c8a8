package main

// General API documentation for swaggo. Run `swag init -g cmd/summaryd/docs.go` to regenerate docs/.
//
// @title           summaryd API
// @version         1.0
// @description     HTTP API for on-demand text summarization.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
