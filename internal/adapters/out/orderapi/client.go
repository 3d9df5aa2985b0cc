// Package orderapi reads orders back from the order HTTP API.
package orderapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrUnexpectedResponse means the API answered with a status other than 200 or 404.
var ErrUnexpectedResponse = errors.New("unexpected order api response")

type orderItem struct {
	ItemID   int64           `json:"item_id"`
	ItemName string          `json:"item_name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type storedOrder struct {
	ID              int64       `json:"id"`
	UserID          string      `json:"userId"`
	VendorID        int64       `json:"vendorId"`
	Status          string      `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	DropOffLocation int64       `json:"dropOffLocation"`
	RobotID         *string     `json:"robotId"`
	Items           []orderItem `json:"items"`
}

type getOrderResponse struct {
	Message string      `json:"message"`
	Order   storedOrder `json:"order"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Client fetches single orders from GET /api/orders/{id}.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// NewClient creates a client for the API at baseURL, e.g. "http://localhost:8080".
// A nil httpClient uses http.DefaultClient; request deadlines come from the context.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, errs.NewValueIsInvalidErrorWithCause("baseURL", fmt.Errorf("%q is not an absolute url", baseURL))
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{baseURL: parsed, httpClient: httpClient}, nil
}

// FetchOrder returns the stored order. A 404 becomes errs.ErrObjectNotFound.
func (c *Client) FetchOrder(ctx context.Context, orderID int64) (*order.Order, error) {
	endpoint := c.baseURL.JoinPath("api", "orders", strconv.FormatInt(orderID, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch order %d: %w", orderID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, errs.NewObjectNotFoundError("order", orderID)
	default:
		var body errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedResponse, resp.StatusCode, body.Message)
	}

	var body getOrderResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode order %d: %w", orderID, err)
	}

	return body.Order.toDomain()
}

func (o storedOrder) toDomain() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(o.Items))
	for _, item := range o.Items {
		lineItem, itemErr := order.NewLineItem(item.ItemID, item.ItemName, item.Quantity, item.Price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, lineItem)
	}

	return order.RestoreOrder(o.ID, o.UserID, o.VendorID, o.DropOffLocation, items, status, o.CreatedAt, o.RobotID)
}
