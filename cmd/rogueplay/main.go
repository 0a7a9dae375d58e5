// Command rogueplay lets a human or a random policy play episodes
// against a registered environment backend, collecting reward and
// steps-per-second statistics and optionally recording a replay GIF.
//
// Environment backends are supplied by the linking program through
// environment.Register and environment.RegisterRaw.
package main

func main() {
	Execute()
}
