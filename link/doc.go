// Package link is a client for the Blockmason Link API.
//
// It exchanges a client ID and secret for an OAuth2 access token, caches
// the token for the life of the client, and issues bearer-authenticated
// GET and POST requests against the versioned API.
//
// Usage:
//
//	client, err := link.New(link.Options{
//		ClientID:     "your_client_id",
//		ClientSecret: "your_client_secret",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	supply, err := client.Get(ctx, "/totalSupply", nil)
//
//	receipt, err := client.Post(ctx, "/mint", link.Inputs{
//		"amount": 12345,
//		"to":     "0x1010202030304040505000006060707080809090",
//	})
//
// Response bodies are returned as decoded JSON without interpretation. A
// non-2xx status with a JSON body is not an error; callers inspect the
// payload for service-level errors. The only server-side errors the client
// recognizes are those returned by the token exchange, surfaced as
// *AuthenticationError.
package link
