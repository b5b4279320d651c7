// Package ebitenhost hosts a viewer.Controller inside an [Ebitengine] game
// loop.
//
// [Viewer] implements [ebiten.Game]: each tick it polls mouse, wheel, touch,
// and keyboard input into a viewer.GestureTracker, advances a
// viewer.FrameTicker so animations and flings progress, and draws the
// content image through the controller's screen matrix.
//
//	v, err := ebitenhost.New(img, cfg)
//	if err != nil { ... }
//	defer v.Close()
//	err = ebitenhost.Run(v, ebitenhost.RunConfig{Title: "Viewer", Width: 800, Height: 600})
//
// [Ebitengine]: https://ebitengine.org
package ebitenhost
