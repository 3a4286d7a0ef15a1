package link_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dvcrn/blockmason-link-go/internal/logger"
	"github.com/dvcrn/blockmason-link-go/link"
)

func Example() {
	// A canned transport standing in for the Link API.
	transport := link.HTTPClientFunc(func(req *http.Request) (*http.Response, error) {
		fmt.Println(req.Method, req.URL)
		body := `{"totalSupply":"1000000"}`
		if req.URL.Path == "/oauth2/token" {
			body = `{"access_token":"token","refresh_token":"refresh"}`
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
			Request:    req,
		}, nil
	})

	client, err := link.New(link.Options{
		ClientID:     "<id>",
		ClientSecret: "<secret>",
	}, link.WithHTTPClient(transport), link.WithLogger(logger.Nop()))
	if err != nil {
		fmt.Println(err)
		return
	}

	outputs, err := client.Get(context.Background(), "/totalSupply", nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(outputs.(map[string]any)["totalSupply"])

	// Output:
	// POST https://api.block.mason.link/oauth2/token
	// GET https://api.block.mason.link/v1/totalSupply
	// 1000000
}

func ExampleNew_missingSecret() {
	_, err := link.New(link.Options{ClientID: "<id>"})
	fmt.Println(err)

	// Output:
	// link: missing options.clientSecret
}
