// Package rmq connects to RabbitMQ and publishes JSON messages to fanout exchanges.
// Requests rejected by signature validation are published to the RejectionsQueue
// exchange, so that any number of monitoring processes can observe them, either live
// through a temporary queue or durably through a named one.
package rmq
