package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/pixelplatformer/level"
)

func main() {
	dir := flag.String("dir", "levels", "directory holding level JSON files")
	id := flag.String("level", "", "level id to open (file name without .json); empty starts a new level")
	flag.Parse()

	log.Println("Editor starting...")
	store, err := level.NewDirStore(*dir)
	if err != nil {
		log.Fatalf("Failed to open level dir: %v", err)
	}
	ed, err := NewEditor(store, *id)
	if err != nil {
		log.Fatalf("Failed to open level: %v", err)
	}

	w, h := ed.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("pixelplatformer editor")
	if err := ebiten.RunGame(ed); err != nil {
		log.Fatal(err)
	}
}
