// Package compose implements services.Controller on top of the Docker Compose
// CLI. The compose file is the source of truth for the service definition;
// this package only issues up/stop/down/pull/ps against it.
package compose
