// Package petstore provides the models and endpoints of the Swagger
// Petstore API on top of the client and response packages.
//
//	c, err := client.New("https://petstore.swagger.io/v2", apiKey, logger)
//	if err != nil {
//		return err
//	}
//	api, err := petstore.NewAPI(c, petstore.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	pets, err := api.FindPetsByStatus(ctx, petstore.StatusAvailable)
//
// NewAPI registers Pet, Category, Tag, Order, User and ApiResponse on the
// client's model registry so responses hydrate into these types.
package petstore
