package services

import (
	"context"
	"strings"
	"testing"

	"github.com/Dosada05/league-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommerceService_OrderTotalsFromProductPrices(t *testing.T) {
	s := newStore()
	svc := NewCommerceService(&fakeTx{}, fakeProductRepo{s}, fakeOrderRepo{s}, discardLogger())
	ctx := context.Background()

	jersey, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Jersey", Price: 4500, Category: "apparel"})
	require.NoError(t, err)
	ball, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Ball", Price: 2999, Category: "gear"})
	require.NoError(t, err)

	order, err := svc.CreateOrder(ctx, nil, CreateOrderInput{Items: []OrderItemInput{
		{ProductID: jersey.ID, Quantity: 2},
		{ProductID: ball.ID, Quantity: 1},
	}})
	require.NoError(t, err)

	assert.Equal(t, 2*4500+2999, order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 4500, order.Items[0].UnitPrice)
}

func TestCommerceService_OrderRejections(t *testing.T) {
	s := newStore()
	svc := NewCommerceService(&fakeTx{}, fakeProductRepo{s}, fakeOrderRepo{s}, discardLogger())
	ctx := context.Background()

	soldOut, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Cap", Price: 1500, Category: "apparel", InStock: new(bool)})
	require.NoError(t, err)

	_, err = svc.CreateOrder(ctx, nil, CreateOrderInput{})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.CreateOrder(ctx, nil, CreateOrderInput{Items: []OrderItemInput{{ProductID: soldOut.ID, Quantity: 1}}})
	assert.ErrorIs(t, err, ErrProductOutOfStock)

	_, err = svc.CreateOrder(ctx, nil, CreateOrderInput{Items: []OrderItemInput{{ProductID: "missing", Quantity: 1}}})
	assert.ErrorIs(t, err, ErrInvalidReference)

	_, err = svc.CreateOrder(ctx, nil, CreateOrderInput{Items: []OrderItemInput{{ProductID: soldOut.ID, Quantity: 0}}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "items[0].quantity")
}

func TestCommerceService_OrderStatusTransitions(t *testing.T) {
	s := newStore()
	svc := NewCommerceService(&fakeTx{}, fakeProductRepo{s}, fakeOrderRepo{s}, discardLogger())
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Jersey", Price: 4500, Category: "apparel"})
	require.NoError(t, err)
	order, err := svc.CreateOrder(ctx, nil, CreateOrderInput{Items: []OrderItemInput{{ProductID: product.ID, Quantity: 1}}})
	require.NoError(t, err)

	shipped := models.OrderStatusShipped
	_, err = svc.UpdateOrderStatus(ctx, order.ID, UpdateOrderInput{Status: &shipped})
	assert.ErrorIs(t, err, ErrValidationFailed)

	paid := models.OrderStatusPaid
	updated, err := svc.UpdateOrderStatus(ctx, order.ID, UpdateOrderInput{Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, paid, updated.Status)

	updated, err = svc.UpdateOrderStatus(ctx, order.ID, UpdateOrderInput{Status: &shipped})
	require.NoError(t, err)
	assert.Equal(t, shipped, updated.Status)
}

func TestMediaService_UploadDisabledWithoutStorage(t *testing.T) {
	svc := NewMediaService(fakeMediaRepo{newStore()}, nil, discardLogger())

	_, err := svc.UploadMedia(context.Background(), nil, UploadMediaInput{
		Title: "Dunk", ContentType: "image/png", File: strings.NewReader("png"),
	})
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

func TestMediaService_UploadAndDelete(t *testing.T) {
	s := newStore()
	uploader := newFakeUploader()
	svc := NewMediaService(fakeMediaRepo{s}, uploader, discardLogger())
	ctx := context.Background()

	tournamentID := "tournament-1"
	media, err := svc.UploadMedia(ctx, nil, UploadMediaInput{
		Title: "Final", ContentType: "video/mp4", TournamentID: &tournamentID, File: strings.NewReader("mp4"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.MediaTypeVideo, media.Type)
	require.NotNil(t, media.StorageKey)
	assert.True(t, strings.HasPrefix(*media.StorageKey, "media/tournament-1/"))
	assert.Equal(t, uploader.GetPublicURL(*media.StorageKey), media.URL)

	_, err = svc.UploadMedia(ctx, nil, UploadMediaInput{Title: "Doc", ContentType: "application/pdf", File: strings.NewReader("pdf")})
	assert.ErrorIs(t, err, ErrValidationFailed)

	require.NoError(t, svc.DeleteMedia(ctx, media.ID))
	assert.Equal(t, []string{*media.StorageKey}, uploader.deleted)
	_, err = svc.GetMedia(ctx, media.ID)
	assert.ErrorIs(t, err, ErrMediaNotFound)
}

func TestMediaService_CreateByURL(t *testing.T) {
	svc := NewMediaService(fakeMediaRepo{newStore()}, nil, discardLogger())
	ctx := context.Background()

	media, err := svc.CreateMedia(ctx, nil, CreateMediaInput{Title: "Poster", Type: models.MediaTypePhoto, URL: "https://img.example.com/p.jpg"})
	require.NoError(t, err)
	assert.NotEmpty(t, media.ID)

	_, err = svc.CreateMedia(ctx, nil, CreateMediaInput{Title: "Poster", Type: "gif", URL: "ftp://x"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "type")
	assert.Contains(t, verr.Fields, "url")
}
