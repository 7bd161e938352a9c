package main

// General API documentation for swaggo; these annotations are the input to swag's doc generator.
//
// @title           inferd API
// @version         1.0
// @description     KServe v2 REST API for model management and inference.
//
// @contact.name   inferd maintainers
//
// @license.name   Apache 2.0
// @license.url    https://www.apache.org/licenses/LICENSE-2.0
//
// @BasePath  /
//
// @schemes http
