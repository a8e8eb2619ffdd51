package paapi

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

const (
	serviceName  = "ProductAdvertisingAPI"
	searchPath   = "/paapi5/searchitems"
	searchTarget = "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.SearchItems"

	// ItemsPerPage 為 SearchItems 單頁上限。
	ItemsPerPage = 10
)

var searchResources = []string{
	"ItemInfo.Title",
	"ItemInfo.ByLineInfo",
	"Offers.Listings.Price",
	"BrowseNodeInfo.BrowseNodes",
	"Images.Primary.Large",
}

// Config 為 PA-API 連線設定。
type Config struct {
	AccessKey   string
	SecretKey   string
	PartnerTag  string
	Region      string
	Marketplace string
	Host        string
	Timeout     time.Duration
}

// Client 以 SigV4 簽章呼叫 Product Advertising API。
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
	signer     *v4.Signer
	creds      aws.CredentialsProvider
	now        func() time.Time
}

// NewClient 建立 PA-API client。
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:        cfg,
		baseURL:    "https://" + cfg.Host,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		signer:     v4.NewSigner(),
		creds:      credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		now:        time.Now,
	}
}

// Item 為搜尋結果中可用的商品欄位。
type Item struct {
	ASIN  string
	Title string
	Brand string
	Price float64
}

type searchRequest struct {
	PartnerTag   string   `json:"PartnerTag"`
	PartnerType  string   `json:"PartnerType"`
	Marketplace  string   `json:"Marketplace"`
	BrowseNodeID string   `json:"BrowseNodeId"`
	SearchIndex  string   `json:"SearchIndex"`
	SortBy       string   `json:"SortBy"`
	ItemCount    int      `json:"ItemCount"`
	ItemPage     int      `json:"ItemPage"`
	Resources    []string `json:"Resources"`
}

type displayValue struct {
	DisplayValue string `json:"DisplayValue"`
}

type searchItem struct {
	ASIN     string `json:"ASIN"`
	ItemInfo struct {
		Title      *displayValue `json:"Title"`
		ByLineInfo *struct {
			Brand        *displayValue `json:"Brand"`
			Manufacturer *displayValue `json:"Manufacturer"`
		} `json:"ByLineInfo"`
	} `json:"ItemInfo"`
	Offers *struct {
		Listings []struct {
			Price *struct {
				Amount float64 `json:"Amount"`
			} `json:"Price"`
		} `json:"Listings"`
	} `json:"Offers"`
}

type searchResponse struct {
	SearchResult *struct {
		Items []json.RawMessage `json:"Items"`
	} `json:"SearchResult"`
}

// SearchItems 取得某 BrowseNode 的一頁搜尋結果；無法解析的單筆商品會被略過。
func (c *Client) SearchItems(ctx context.Context, browseNodeID string, page int) ([]Item, error) {
	payload, err := json.Marshal(searchRequest{
		PartnerTag:   c.cfg.PartnerTag,
		PartnerType:  "Associates",
		Marketplace:  c.cfg.Marketplace,
		BrowseNodeID: browseNodeID,
		SearchIndex:  "Beauty",
		SortBy:       "Relevance",
		ItemCount:    ItemsPerPage,
		ItemPage:     page,
		Resources:    searchResources,
	})
	if err != nil {
		return nil, err
	}

	body, err := c.call(ctx, payload)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if resp.SearchResult == nil {
		return nil, nil
	}
	items := make([]Item, 0, len(resp.SearchResult.Items))
	for i, raw := range resp.SearchResult.Items {
		var it searchItem
		if err := json.Unmarshal(raw, &it); err != nil || it.ASIN == "" {
			log.Printf("paapi skip item node=%s page=%d index=%d err=%v", browseNodeID, page, i, err)
			continue
		}
		items = append(items, toItem(it))
	}
	return items, nil
}

func toItem(it searchItem) Item {
	out := Item{ASIN: it.ASIN, Title: "Unknown", Brand: "Unknown"}
	if it.ItemInfo.Title != nil && it.ItemInfo.Title.DisplayValue != "" {
		out.Title = it.ItemInfo.Title.DisplayValue
	}
	if by := it.ItemInfo.ByLineInfo; by != nil {
		switch {
		case by.Brand != nil && by.Brand.DisplayValue != "":
			out.Brand = by.Brand.DisplayValue
		case by.Manufacturer != nil && by.Manufacturer.DisplayValue != "":
			out.Brand = by.Manufacturer.DisplayValue
		}
	}
	if it.Offers != nil && len(it.Offers.Listings) > 0 && it.Offers.Listings[0].Price != nil {
		out.Price = it.Offers.Listings[0].Price.Amount
	}
	return out
}

func (c *Client) call(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Host = c.cfg.Host
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Content-Encoding", "amz-1.0")
	req.Header.Set("X-Amz-Target", searchTarget)

	sum := sha256.Sum256(payload)
	creds, err := c.creds.Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("retrieve credentials: %w", err)
	}
	if err := c.signer.SignHTTP(ctx, creds, req, hex.EncodeToString(sum[:]), serviceName, c.cfg.Region, c.now()); err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("paapi error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}
