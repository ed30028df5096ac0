// Package client executes calls against a REST API and hands the responses
// to the response package for deserialization.
//
//	c, err := client.New("https://petstore.example.com/v2", apiKey, logger,
//		client.WithTimeout(10*time.Second),
//		client.WithRegistry(reg),
//	)
//	if err != nil {
//		return err
//	}
//
//	v, resp, err := c.Call(ctx, client.Request{
//		Path:       "/pet/findByStatus",
//		Query:      url.Values{"status": {"available"}},
//		ReturnType: "Array<Pet>",
//	})
//
// Every request carries Accept: application/json (or */* for File return
// types) and the api_key header when a key is configured. The client does
// not retry.
package client
