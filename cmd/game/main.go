package main

import (
	"flag"
	"log"
	"time"

	"github.com/Garsondee/Warband-Tactics/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var seed int64
	flag.Int64Var(&seed, "seed", 0, "battle seed (0 = time-based)")
	flag.Parse()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ui := game.NewUI(seed)
	ebiten.SetWindowTitle("Warband Tactics")
	ebiten.SetWindowSize(ui.Size())
	if err := ebiten.RunGame(ui); err != nil {
		log.Fatal(err)
	}
}
