package docstore

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jefftrojan/afritrade-rev/internal/model"
)

// The collections predate this service and carry loosely-typed fields:
// "Client Contact" keyed with a space, numbers stored as ints, doubles or
// strings, and Date either a Firestore timestamp, a {seconds,nanos} map, a
// bare epoch value, or missing entirely. Decoding goes through the raw
// document map and coerces each field instead of DataTo, so one malformed
// document degrades to zero values rather than failing the whole fetch.

func decodeDeliveryRequest(id string, data map[string]interface{}) model.DeliveryRequest {
	req := model.DeliveryRequest{
		ID:            id,
		Product:       coerceString(data["Product"]),
		Source:        coerceString(data["Source"]),
		Destination:   coerceString(data["Destination"]),
		Quantity:      coerceInt(data["Quantity"]),
		ClientContact: coerceString(data["Client Contact"]),
		Status:        model.RequestStatus(coerceString(data["status"])),
	}
	if req.Status == "" {
		req.Status = model.RequestStatusPending
	}
	return req
}

func requestDoc(req *model.DeliveryRequest) map[string]interface{} {
	return map[string]interface{}{
		"Product":        req.Product,
		"Source":         req.Source,
		"Destination":    req.Destination,
		"Quantity":       req.Quantity,
		"Client Contact": req.ClientContact,
		"status":         string(req.Status),
	}
}

func decodeDeliveryStatus(id string, data map[string]interface{}) model.DeliveryStatus {
	ds := model.DeliveryStatus{
		ID:            id,
		RequestID:     coerceString(data["RequestID"]),
		Product:       coerceString(data["Product"]),
		Quantity:      coerceInt(data["Quantity"]),
		ClientContact: coerceString(data["Client Contact"]),
		Date:          coerceDate(data["Date"]),
		Status:        model.DeliveryState(coerceString(data["status"])),
	}
	if ds.Status == "" {
		ds.Status = model.DeliveryStatePending
	}
	return ds
}

func statusDoc(ds *model.DeliveryStatus) map[string]interface{} {
	return map[string]interface{}{
		"RequestID":      ds.RequestID,
		"Product":        ds.Product,
		"Quantity":       ds.Quantity,
		"Client Contact": ds.ClientContact,
		"Date":           ds.Date,
		"status":         string(ds.Status),
	}
}

func coerceString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(s)
	}
}

func coerceInt(v interface{}) int {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	default:
		return 0
	}
}

// coerceDate accepts the representations observed in the collection; a
// missing or unreadable field yields the zero time.
func coerceDate(v interface{}) time.Time {
	switch d := v.(type) {
	case nil:
		return time.Time{}
	case time.Time:
		return d
	case int64:
		return time.Unix(d, 0)
	case float64:
		return time.Unix(int64(d), 0)
	case map[string]interface{}:
		secs := coerceInt(d["seconds"])
		if secs == 0 {
			return time.Time{}
		}
		return time.Unix(int64(secs), 0)
	default:
		return time.Time{}
	}
}
