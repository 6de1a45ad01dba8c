package flatfile

import (
	"strconv"
	"time"

	"github.com/mrops-br/inventory-api/internal/domain"
	"github.com/mrops-br/inventory-api/internal/infrastructure/storage/recordstore"
)

var productCodec = codec[domain.Product]{
	encode: func(p domain.Product) recordstore.Record { return p.Fields() },
	decode: decodeProduct,
	id:     func(p domain.Product) string { return p.ID },
}

var supplierCodec = codec[domain.Supplier]{
	encode: func(s domain.Supplier) recordstore.Record { return s.Fields() },
	decode: decodeSupplier,
	id:     func(s domain.Supplier) string { return s.ID },
}

var orderCodec = codec[domain.Order]{
	encode: func(o domain.Order) recordstore.Record { return o.Fields() },
	decode: decodeOrder,
	id:     func(o domain.Order) string { return o.ID },
}

var saleCodec = codec[domain.Sale]{
	encode: func(s domain.Sale) recordstore.Record { return s.Fields() },
	decode: decodeSale,
	id:     func(s domain.Sale) string { return s.ID },
}

func decodeProduct(r recordstore.Record) (domain.Product, error) {
	if len(r) != 5 {
		return domain.Product{}, corrupt("product has %d fields, want 5", len(r))
	}
	price, err := domain.ParsePrice(r[3])
	if err != nil {
		return domain.Product{}, corrupt("product %s price %q", r[0], r[3])
	}
	stock, err := domain.ParseStock(r[4])
	if err != nil {
		return domain.Product{}, corrupt("product %s stock %q", r[0], r[4])
	}
	return domain.Product{ID: r[0], Name: r[1], Description: r[2], Price: price, Stock: stock}, nil
}

func decodeSupplier(r recordstore.Record) (domain.Supplier, error) {
	if len(r) != 3 {
		return domain.Supplier{}, corrupt("supplier has %d fields, want 3", len(r))
	}
	return domain.Supplier{ID: r[0], Name: r[1], Contact: r[2]}, nil
}

func decodeOrder(r recordstore.Record) (domain.Order, error) {
	if len(r) != 5 {
		return domain.Order{}, corrupt("order has %d fields, want 5", len(r))
	}
	quantity, err := strconv.Atoi(r[2])
	if err != nil {
		return domain.Order{}, corrupt("order %s quantity %q", r[0], r[2])
	}
	at, err := time.ParseInLocation(domain.TimestampLayout, r[3], time.Local)
	if err != nil {
		return domain.Order{}, corrupt("order %s timestamp %q", r[0], r[3])
	}
	return domain.Order{ID: r[0], ProductID: r[1], Quantity: quantity, Timestamp: at, SupplierID: r[4]}, nil
}

func decodeSale(r recordstore.Record) (domain.Sale, error) {
	if len(r) != 6 {
		return domain.Sale{}, corrupt("sale has %d fields, want 6", len(r))
	}
	quantity, err := strconv.Atoi(r[3])
	if err != nil {
		return domain.Sale{}, corrupt("sale %s quantity %q", r[0], r[3])
	}
	start, err := time.Parse(domain.DateLayout, r[4])
	if err != nil {
		return domain.Sale{}, corrupt("sale %s start date %q", r[0], r[4])
	}
	end, err := time.Parse(domain.DateLayout, r[5])
	if err != nil {
		return domain.Sale{}, corrupt("sale %s end date %q", r[0], r[5])
	}
	return domain.Sale{
		ID:           r[0],
		ProductID:    r[1],
		ProductName:  r[2],
		QuantitySold: quantity,
		StartDate:    start,
		EndDate:      end,
	}, nil
}
