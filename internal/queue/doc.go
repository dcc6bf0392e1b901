// Package queue announces newly created cosmonauts to downstream consumers.
//
// Every transport delivers the same payload, a bare JSON object
// {"name": <name>, "age": <age>}, to the durable queue named by QueueName.
// There is no envelope, correlation id or schema version.
package queue
