/*
Package app links together the routing of messages and the decorator
stack that every transaction passes through.
*/
package app
