package main // Entry point for the reservation notification worker

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/event-seat-reservation/internal/queue"
)

// The worker consumes the seat.reserved queue and records each
// reservation, decoupled from the API so slow notification handling never
// delays a reserve call.
func main() {
	_ = godotenv.Load()

	logrus.Info("starting seat.reserved consumer")
	if err := queue.StartSeatReservedConsumer(); err != nil {
		logrus.WithError(err).Fatal("consumer stopped")
	}
}
