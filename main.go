package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gatebreach/common"
	"github.com/milk9111/gatebreach/ecs/entity"
	"github.com/milk9111/gatebreach/mission"
	"github.com/milk9111/gatebreach/prefabs"
	"github.com/milk9111/gatebreach/spectate"
)

func main() {
	debug := flag.Bool("debug", false, "draw detection radii and planned paths")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	arenaName := flag.String("arena", "", "arena prefab name (default arena.yaml)")
	prefabDir := flag.String("prefabs", prefabs.Dir, "directory whose prefabs override the embedded ones")
	seed := flag.Int64("seed", 0, "random seed for robot wandering (0 picks one)")
	headless := flag.Bool("headless", false, "run the mission without a window and print the outcome")
	seconds := flag.Float64("seconds", 200, "simulated seconds for -headless")
	tui := flag.Bool("tui", false, "play in the terminal instead of a window")
	spectateAddr := flag.String("spectate", "", "serve read-only mission snapshots over websocket on this address (e.g. :8080)")
	showRecords := flag.Bool("records", false, "print saved mission history and exit")
	flag.Parse()

	prefabs.Dir = *prefabDir
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	records, err := mission.OpenRecords("gatebreach")
	if err != nil {
		log.Printf("records: %v (history not saved)", err)
	}

	if *showRecords {
		printRecords(records)
		return
	}

	var spectators *spectate.Hub
	if *spectateAddr != "" {
		spectators = spectate.NewHub(spectate.HubConfig{})
		defer spectators.Close()
		go func() {
			if err := spectators.Serve(*spectateAddr); err != nil {
				log.Printf("spectate: %v", err)
			}
		}()
	}

	if *headless {
		specs, err := entity.LoadSpecs(*arenaName)
		if err != nil {
			log.Fatal(err)
		}
		rec, err := runHeadless(specs, *seed, *seconds, records, spectators)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("outcome=%s reason=%q elapsed=%.1fs kills=%d seed=%d\n", rec.Outcome, rec.Reason, rec.Elapsed, rec.Kills, rec.Seed)
		return
	}

	if *tui {
		if err := runTerminal(*arenaName, *seed, records, spectators); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("gatebreach")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(*arenaName, *seed, *debug, records, spectators)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func printRecords(records *mission.Records) {
	all := records.All()
	if len(all) == 0 {
		fmt.Println("no missions recorded")
		return
	}
	for i, rec := range all {
		fmt.Printf("%3d  %-8s %-14s %6.1fs  kills=%d  seed=%d\n", i+1, rec.Outcome, rec.Reason, rec.Elapsed, rec.Kills, rec.Seed)
	}
	if best, ok := records.Best(); ok {
		fmt.Printf("best: %s in %.1fs\n", best.Outcome, best.Elapsed)
	}
}
