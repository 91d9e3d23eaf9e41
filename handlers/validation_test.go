package handlers

import (
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/leonexus/site/api"
)

// createTestContext creates a Fiber context carrying form data
func createTestContext(app *fiber.App, formData url.Values) *fiber.Ctx {
	fctx := &fasthttp.RequestCtx{}
	fctx.Request.Header.SetMethod(fiber.MethodPost)
	fctx.Request.Header.SetContentType(fiber.MIMEApplicationForm)
	fctx.Request.SetBodyString(formData.Encode())
	return app.AcquireCtx(fctx)
}

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name        string
		fieldValue  string
		expectValue string
		expectError bool
	}{
		{name: "valid required field", fieldValue: "Toyota", expectValue: "Toyota"},
		{name: "value is trimmed", fieldValue: "  Toyota ", expectValue: "Toyota"},
		{name: "empty required field", fieldValue: "", expectError: true},
		{name: "whitespace only field", fieldValue: "   ", expectError: true},
	}

	app := fiber.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := createTestContext(app, url.Values{"make": {tt.fieldValue}})
			defer app.ReleaseCtx(c)

			value, err := ValidateRequired(c, "make", "Make")
			if tt.expectError {
				assert.EqualError(t, err, "Make is required")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectValue, value)
		})
	}
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		expectValue int
		expectError bool
	}{
		{name: "valid integer parameter", path: "/cars/123", expectValue: 123},
		{name: "invalid integer parameter", path: "/cars/abc", expectError: true},
		{name: "zero is rejected", path: "/cars/0", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var (
				got    int
				gotErr error
			)
			app.Get("/cars/:id", func(c *fiber.Ctx) error {
				got, gotErr = ParseIntParam(c, "id")
				return nil
			})
			_, err := app.Test(httptest.NewRequest(fiber.MethodGet, tt.path, nil))
			require.NoError(t, err)

			if tt.expectError {
				var fe *fiber.Error
				require.ErrorAs(t, gotErr, &fe)
				assert.Equal(t, fiber.StatusBadRequest, fe.Code)
				assert.Equal(t, "Invalid parameter: id", fe.Message)
				return
			}
			assert.NoError(t, gotErr)
			assert.Equal(t, tt.expectValue, got)
		})
	}
}

func TestValidationErrorResponseWithStatus(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		return ValidationErrorResponseWithStatus(c, "Price is required", fiber.StatusUnprocessableEntity)
	})
	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), "text/html"))
	assert.Contains(t, string(body), "Price is required")
}

func TestParseReview(t *testing.T) {
	tests := []struct {
		name    string
		rating  string
		comment string
		want    api.ReviewInput
		wantErr string
	}{
		{name: "valid", rating: "4", comment: " Great car ", want: api.ReviewInput{Rating: 4, Comment: "Great car"}},
		{name: "comment optional", rating: "1", want: api.ReviewInput{Rating: 1}},
		{name: "too high", rating: "6", wantErr: "Rating must be between 1 and 5"},
		{name: "zero", rating: "0", wantErr: "Rating must be between 1 and 5"},
		{name: "not a number", rating: "five", wantErr: "Rating must be between 1 and 5"},
		{name: "long comment", rating: "3", comment: strings.Repeat("a", maxCommentLength+1), wantErr: "Comment must be at most 2000 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseReview(tt.rating, tt.comment)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/cars/5", "/cars/5"},
		{"/cars?make=Toyota", "/cars?make=Toyota"},
		{"", ""},
		{"cars", ""},
		{"//evil.example", ""},
		{"https://evil.example/", ""},
		{`/\evil.example`, ""},
		{"/</script><script>alert(1)</script>", ""},
		{`/cars?q="x"`, ""},
		{"/cars/5#reviews", ""},
		{"/cars?search=land%20cruiser", "/cars?search=land%20cruiser"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeNext(tt.in), tt.in)
	}
}

func TestLandingFor(t *testing.T) {
	dealer := api.User{ID: 1, Role: api.RoleDealer}
	buyer := api.User{ID: 2, Role: api.RoleBuyer}

	assert.Equal(t, "/dashboard", landingFor(dealer, ""))
	assert.Equal(t, "/buyer-dashboard", landingFor(buyer, "//evil"))
	assert.Equal(t, "/", landingFor(api.User{ID: 3}, ""))
	assert.Equal(t, "/cars/9", landingFor(buyer, "/cars/9"))
}

func TestDealershipFor(t *testing.T) {
	list := []api.Dealership{{ID: 1, Name: "Prime Autos"}, {ID: 2, Name: "Nairobi Motors "}}

	car := api.Car{Dealer: api.DealerRef{ID: 4, Dealer: &api.Dealer{ID: 4, Name: "nairobi motors"}}}
	d := dealershipFor(car, list)
	require.NotNil(t, d)
	assert.Equal(t, 2, d.ID)

	assert.Nil(t, dealershipFor(api.Car{Dealer: api.DealerRef{ID: 4}}, list))
	assert.Nil(t, dealershipFor(api.Car{Dealer: api.DealerRef{ID: 4, Dealer: &api.Dealer{Name: "Unknown"}}}, list))
}
