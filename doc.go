/*
Package scoreboard keeps ranked scores in a Redis sorted set.

Pick a store binding and wrap it in a Client:

	store := goredisstore.New(&redis.Options{Addr: "127.0.0.1:6379"})
	client := scoreboard.New(store, scoreboard.WithKey("game:scores"))

Then connect, write scores and read the ranking back:

	if err := client.Connect(ctx); err != nil {
		panic(err)
	}
	defer client.Disconnect()

	err := client.UpdateScores(ctx,
		scoreboard.Entry{Name: "Alice", Score: 100},
		scoreboard.Entry{Name: "Bob", Score: 200},
	)
	if err != nil {
		panic(err)
	}

	top, err := client.FetchTopN(ctx, 3, true)
	if err != nil {
		panic(err)
	}
	scoreboard.Render(os.Stdout, top)

Errors come in two kinds. A *ConnectionError means the store could not be
reached or dropped the session; a *CommandError means the store rejected a
command or answered with a reply of the wrong shape:

	if scoreboard.IsConnectionError(err) {
		os.Exit(1)
	}

Run performs the whole connect, update, fetch, render and disconnect sequence
in one call.
*/
package scoreboard
