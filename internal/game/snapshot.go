package game

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Snapshot contains the complete engine state for replay and determinism
// checks. Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick        uint64
	Score       int
	Lives       int
	Playing     bool
	Won         bool
	PaddleX     int
	PaddleWidth int

	// Each ball is 5 floats: X, Y, VX, VY, Radius
	BallData []float64

	// Each brick is 3 ints: X, Y, Special
	BrickData []int

	// Each power-up is 3 ints: X, Y, Type
	PowerUpData []int

	HighScores []int

	// RNG state after the last tick
	RNGState uint64
}

// Snapshot returns the current engine state as a Snapshot.
func (e *Engine) Snapshot() Snapshot {
	s := &e.state

	ballData := make([]float64, 0, len(s.balls)*5)
	for _, b := range s.balls {
		ballData = append(ballData, b.X, b.Y, b.VX, b.VY, b.Radius)
	}

	brickData := make([]int, 0, s.bricks.Len()*3)
	for _, b := range s.bricks.bricks {
		special := 0
		if b.Special {
			special = 1
		}
		brickData = append(brickData, b.X, b.Y, special)
	}

	powerUpData := make([]int, 0, len(s.powerUps)*3)
	for _, p := range s.powerUps {
		powerUpData = append(powerUpData, p.X, p.Y, int(p.Type))
	}

	return Snapshot{
		Tick:        s.tick,
		Score:       s.score,
		Lives:       s.lives,
		Playing:     s.playing,
		Won:         s.won,
		PaddleX:     s.paddle.X,
		PaddleWidth: s.paddle.Width,
		BallData:    ballData,
		BrickData:   brickData,
		PowerUpData: powerUpData,
		HighScores:  s.HighScores(),
		RNGState:    e.rng.State(),
	}
}

// Hash computes a deterministic hash of the snapshot.
// Used for replay verification and determinism testing.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	writeInt := func(v int) {
		writeUint(uint64(int64(v))) //#nosec G115 -- bit pattern only
	}
	writeBool := func(v bool) {
		if v {
			writeUint(1)
		} else {
			writeUint(0)
		}
	}

	writeUint(s.Tick)
	writeInt(s.Score)
	writeInt(s.Lives)
	writeBool(s.Playing)
	writeBool(s.Won)
	writeInt(s.PaddleX)
	writeInt(s.PaddleWidth)

	writeInt(len(s.BallData))
	for _, v := range s.BallData {
		writeUint(math.Float64bits(v))
	}
	writeInt(len(s.BrickData))
	for _, v := range s.BrickData {
		writeInt(v)
	}
	writeInt(len(s.PowerUpData))
	for _, v := range s.PowerUpData {
		writeInt(v)
	}
	writeInt(len(s.HighScores))
	for _, v := range s.HighScores {
		writeInt(v)
	}
	writeUint(s.RNGState)

	return h.Sum64()
}
