package model

import (
	"reflect"
	"testing"
)

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"pending", OrderStatusPending, "Pending"},
		{"delivered", OrderStatusDelivered, "Delivered"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestCollectionNames(t *testing.T) {
	cases := []struct {
		collection Collection
		value      string
	}{
		{CollectionOrders, "orders"},
		{CollectionUsers, "users"},
		{CollectionAddresses, "addresses"},
	}

	for _, tc := range cases {
		if string(tc.collection) != tc.value {
			t.Fatalf("expected %s, got %s", tc.value, tc.collection)
		}
	}
}

func TestItemNames(t *testing.T) {
	row := EnrichedOrder{Items: []LineItem{{Name: "Widget"}, {Name: "Gadget"}}}
	if got := row.ItemNames(); !reflect.DeepEqual(got, []string{"Widget", "Gadget"}) {
		t.Fatalf("unexpected names %v", got)
	}

	row = EnrichedOrder{}
	if got := row.ItemNames(); len(got) != 0 {
		t.Fatalf("expected no names, got %v", got)
	}
}
