// Package remote feeds a scatter Stage from input devices on the other
// side of a websocket: browsers, touch tables or test rigs.
//
// Clients send one JSON object per text message:
//
//	{"type":"pointer","phase":"start","id":1,"pointer":"touch","x":120,"y":80,"buttons":1}
//	{"type":"touch","phase":"move","touches":[{"id":1,"x":121,"y":82}]}
//	{"type":"mouse","phase":"end","x":10,"y":10}
//	{"type":"wheel","x":10,"y":10,"deltaY":-120}
//
// A Source is an http.Handler. Mount it, then attach it to the stage:
//
//	src := remote.NewSource(remote.Config{Capabilities: scatter.CapPointer})
//	http.Handle("/input", src)
//	stage.SetSource(src)
//
// Each connection is read on its own goroutine; events reach the stage
// through a buffered channel drained by Poll from the stage's goroutine.
package remote
