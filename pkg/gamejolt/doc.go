// Package gamejolt is a client binding for the Game Jolt game API (v1).
//
// Every operation follows the same pipeline: the request builder assembles
// the endpoint URL, appends the caller's query fragments and the game id,
// and signs the result with the game's private key; the transport performs
// the HTTP exchange on its own goroutine; the translator decodes the body
// according to the endpoint's wire dialect; the dispatcher delivers exactly
// one CallResult to the caller.
//
// # Basic Usage
//
//	client, err := gamejolt.New(gamejolt.Credentials{
//	    GameID:     "22926",
//	    PrivateKey: "your-private-key",
//	})
//
//	call := client.FetchUser(ctx, "cros", func(res gamejolt.CallResult) {
//	    if !res.OK() {
//	        return
//	    }
//	    user, _ := gamejolt.AsRecord[gamejolt.User](res.Payload)
//	    fmt.Println(user.DisplayName())
//	})
//
//	// Or wait on the returned future instead of using a callback.
//	res, err := call.Wait(ctx)
//
// # Results
//
// A CallResult is in one of five outcomes:
//
//   - OutcomeUnreached: no HTTP response arrived (refused, DNS, timeout).
//   - OutcomeFailed: the service answered and reported failure; the
//     service's message is the Text payload.
//   - OutcomeSucceeded: the service answered and reported success.
//   - OutcomeMalformed: a response arrived but did not match the dialect.
//   - OutcomeRejected: the call broke a caller contract (for example an
//     empty id list) and was never sent.
//
// Params echoes the call's inputs in order so concurrent calls can be
// correlated by the handler.
//
// # Wire dialects
//
// Most endpoints answer with a JSON envelope ({"response": {...}}) carrying
// a "success" flag. Record endpoints carry a list (users, trophies, scores,
// tables, keys) inside the same envelope. Data-store reads and updates use
// the line-based dump format, whose first character is S or F.
package gamejolt
