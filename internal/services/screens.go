package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"florist/internal/models"
	"florist/internal/upstream"
)

// RegisterScreens wires the six admin/employee screens into the listing
// service. Column sets follow the exports of the screens they replace.
func RegisterScreens(listing *ListingService, client *upstream.Client) {
	listing.Register(Screen{
		Name:    "produk",
		Columns: []string{"ID", "Name", "Price", "Stock", "Sizes", "Category", "Color"},
		Fetch: func(ctx context.Context, token string) ([]Row, error) {
			products, err := client.Products(ctx, token, "")
			if err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(products))
			for _, p := range products {
				rows = append(rows, Row{
					strconv.FormatUint(uint64(p.IDProduk), 10),
					p.Name,
					formatAmount(p.Harga),
					strconv.Itoa(p.Stok),
					p.Ukuran,
					dash(p.Kategori),
					dash(p.Warna),
				})
			}
			return rows, nil
		},
	})

	listing.Register(Screen{
		Name:    "pesanan",
		Columns: []string{"ID", "OrderCode", "Receiver", "Total", "Status", "Produk"},
		Fetch: func(ctx context.Context, token string) ([]Row, error) {
			checkouts, err := client.Checkouts(ctx, token)
			if err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(checkouts))
			for _, co := range checkouts {
				parts := make([]string, 0, len(co.Items))
				for _, item := range co.Items {
					parts = append(parts, fmt.Sprintf("%s x%d (%s)", item.Produk.Name, item.Quantity, item.Ukuran))
				}
				rows = append(rows, Row{
					strconv.FormatUint(uint64(co.ID), 10),
					co.OrderCode,
					co.ReceiverName,
					formatAmount(co.TotalAmount),
					string(co.Status),
					strings.Join(parts, ", "),
				})
			}
			return rows, nil
		},
	})

	listing.Register(Screen{
		Name:    "pembeli",
		Columns: []string{"ID", "Username", "Email", "Phone", "Address"},
		Fetch: func(ctx context.Context, token string) ([]Row, error) {
			users, err := client.Users(ctx, token)
			if err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(users))
			for _, u := range users {
				if u.Role != models.RoleUser {
					continue
				}
				rows = append(rows, userRow(u))
			}
			return rows, nil
		},
	})

	listing.Register(Screen{
		Name:    "karyawan",
		Columns: []string{"ID", "Username", "Email", "Phone", "Address"},
		Fetch: func(ctx context.Context, token string) ([]Row, error) {
			employees, err := client.Employees(ctx, token)
			if err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(employees))
			for _, u := range employees {
				rows = append(rows, userRow(u))
			}
			return rows, nil
		},
	})

	listing.Register(Screen{
		Name:    "komplain",
		Columns: []string{"ID", "User", "Subject", "Message", "Date"},
		Fetch: func(ctx context.Context, token string) ([]Row, error) {
			komplains, err := client.Komplains(ctx, token)
			if err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(komplains))
			for _, k := range komplains {
				rows = append(rows, Row{
					strconv.FormatUint(uint64(k.ID), 10),
					dash(k.Username),
					k.Subject,
					k.Message,
					k.CreatedAt.Format("2006-01-02"),
				})
			}
			return rows, nil
		},
	})

	listing.Register(Screen{
		Name:    "custom",
		Columns: []string{"ID", "Name", "FlowerType", "Color", "Size", "Arrangement", "DeliveryDate", "Status"},
		Fetch: func(ctx context.Context, token string) ([]Row, error) {
			orders, err := client.CustomOrders(ctx, token)
			if err != nil {
				return nil, err
			}
			rows := make([]Row, 0, len(orders))
			for _, o := range orders {
				rows = append(rows, Row{
					strconv.FormatUint(uint64(o.ID), 10),
					o.Username,
					o.FlowerType,
					o.FlowerColor,
					o.Size,
					o.Arrangement,
					o.DeliveryDate,
					string(o.Status),
				})
			}
			return rows, nil
		},
	})
}

func userRow(u models.User) Row {
	return Row{
		strconv.FormatUint(uint64(u.ID), 10),
		u.Username,
		u.Email,
		u.Phone,
		u.Address,
	}
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
