// Package api provides the infrastructure inventory REST API.
//
//	@title						Inventory API
//	@version					1.0
//	@description				Network and datacenter inventory API
//	@BasePath					/api
//	@securityDefinitions.apikey	TokenAuth
//	@in							header
//	@name						Authorization
package api
