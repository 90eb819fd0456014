package main

import (
	"flag"
	"math"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/pawbox/pawbox/ecs/component"
)

func main() {
	var (
		duration = flag.Duration("duration", 15*time.Second, "how long to run the demo session")
		hz       = flag.Int("hz", 60, "simulation tick rate")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "agent behavior seed")
		dev      = flag.Bool("dev", false, "verbose development logging")
	)
	flag.Parse()

	log, err := newLogger(*dev)
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	game, err := NewGame(log, *seed)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	defer game.Close()

	runDemo(game, log, *duration, *hz)

	log.Info("session over", zap.Int("score", game.Score()))
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// runDemo drives the session with a scripted cat: circle the room and take a
// swipe at whatever comes in range, alternating paws.
func runDemo(game *Game, log *zap.Logger, duration time.Duration, hz int) {
	if hz <= 0 {
		hz = 60
	}
	step := time.Second / time.Duration(hz)
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	deadline := time.Now().Add(duration)
	elapsed := 0.0
	swipes := 0

	last := time.Now()
	for now := range ticker.C {
		dt := now.Sub(last).Seconds()
		last = now
		elapsed += dt

		game.SetIntent(demoIntent(elapsed, &swipes))
		game.Update(dt)

		for _, award := range game.DrainAwards() {
			log.Info("mischief",
				zap.String("reason", award.Reason),
				zap.Int("points", award.Points),
				zap.Int("total", award.Total),
			)
		}

		if now.After(deadline) {
			return
		}
	}
}

// demoIntent walks a slow circle and fires a paw press edge once a second.
func demoIntent(elapsed float64, swipes *int) (in component.Intent) {
	angle := elapsed * 0.5
	in.MoveX = math.Cos(angle)
	in.MoveZ = math.Sin(angle)

	if due := int(elapsed); due > *swipes {
		*swipes = due
		if due%2 == 0 {
			in.SwipeLeft = true
		} else {
			in.SwipeRight = true
		}
	}
	return in
}
