// Package ports defines the driven-side interfaces of carbondash and
// reusable contract suites that every adapter implementation must pass.
package ports
