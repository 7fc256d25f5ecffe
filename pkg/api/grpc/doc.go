// Package grpc serves the standard gRPC health checking protocol
// (grpc.health.v1.Health) so orchestrators that check health over gRPC see the same
// liveness as GET /check.
package grpc
