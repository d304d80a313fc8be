package main

// General API documentation for swaggo. The registered document lives in
// internal/httpapi/docs.
//
// @title           toastd API
// @version         1.0
// @description     Captures toast notification text from accessibility events for UI test harnesses.
//
// @contact.name   toastd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
