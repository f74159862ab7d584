// Package app assembles the storage backend and services shared by the
// server and the trackerctl command.
package app
