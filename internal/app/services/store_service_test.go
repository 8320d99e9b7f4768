package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/app/models/dto"
	"github.com/acodelab/backend/internal/app/services"
	"github.com/acodelab/backend/internal/pkg/apperrors"
)

func newStoreFixture() (*services.StoreService, *fakeAccounts, *fakeCatalog) {
	accounts := newFakeAccounts()
	catalog := newFakeCatalog(accounts)
	return services.NewStoreService(catalog), accounts, catalog
}

func TestStorePurchase(t *testing.T) {
	ctx := context.Background()
	svc, accounts, catalog := newStoreFixture()

	buyer := accounts.addUser(&models.User{Username: "buyer", PConPoints: 500})
	item := catalog.addItem(&models.StoreItem{Name: "Dark Theme", Price: 120, IsActive: true})

	resp, err := svc.Purchase(ctx, userActor(buyer), &dto.PurchaseRequest{ItemID: item.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("Purchase() error = %v", err)
	}
	if resp.Purchase.TotalCost != 240 {
		t.Errorf("total cost = %d, want 240", resp.Purchase.TotalCost)
	}
	if resp.RemainingBalance != 260 {
		t.Errorf("remaining = %d, want 260", resp.RemainingBalance)
	}

	inventory, err := svc.Inventory(ctx, userActor(buyer))
	if err != nil {
		t.Fatalf("Inventory() error = %v", err)
	}
	if len(inventory) != 1 || inventory[0].Quantity != 2 {
		t.Errorf("inventory = %+v, want one entry with quantity 2", inventory)
	}

	history, err := svc.PurchaseHistory(ctx, userActor(buyer))
	if err != nil {
		t.Fatalf("PurchaseHistory() error = %v", err)
	}
	if len(history) != 1 {
		t.Errorf("history = %d entries, want 1", len(history))
	}
}

func TestStorePurchaseRejections(t *testing.T) {
	ctx := context.Background()
	svc, accounts, catalog := newStoreFixture()

	minRank := models.RankContribuidor
	novice := accounts.addUser(&models.User{Username: "novice", PConPoints: 1000})
	poor := accounts.addUser(&models.User{Username: "poor", PCPoints: 600, PConPoints: 10})

	active := catalog.addItem(&models.StoreItem{Name: "Badge", Price: 50, IsActive: true})
	retired := catalog.addItem(&models.StoreItem{Name: "Retired Badge", Price: 50})
	gated := catalog.addItem(&models.StoreItem{Name: "Spotlight", Price: 300, IsActive: true, MinRank: &minRank})

	tests := []struct {
		name    string
		actor   *models.Actor
		req     *dto.PurchaseRequest
		wantErr error
	}{
		{
			name:    "company cannot purchase",
			actor:   companyActor(&models.Company{ID: 42, Name: "Acme"}),
			req:     &dto.PurchaseRequest{ItemID: active.ID, Quantity: 1},
			wantErr: apperrors.ErrPermissionDenied,
		},
		{
			name:    "missing item",
			actor:   userActor(novice),
			req:     &dto.PurchaseRequest{ItemID: 404, Quantity: 1},
			wantErr: apperrors.ErrItemNotFound,
		},
		{
			name:    "inactive item",
			actor:   userActor(novice),
			req:     &dto.PurchaseRequest{ItemID: retired.ID, Quantity: 1},
			wantErr: apperrors.ErrItemInactive,
		},
		{
			name:    "rank too low",
			actor:   userActor(novice),
			req:     &dto.PurchaseRequest{ItemID: gated.ID, Quantity: 1},
			wantErr: apperrors.ErrInsufficientRank,
		},
		{
			name:    "insufficient funds",
			actor:   userActor(poor),
			req:     &dto.PurchaseRequest{ItemID: gated.ID, Quantity: 1},
			wantErr: apperrors.ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Purchase(ctx, tt.actor, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Purchase() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStorePurchaseUniqueItem(t *testing.T) {
	ctx := context.Background()
	svc, accounts, catalog := newStoreFixture()

	buyer := accounts.addUser(&models.User{Username: "buyer", PConPoints: 1000})
	item := catalog.addItem(&models.StoreItem{Name: "Founder Badge", Price: 100, IsActive: true, Unique: true})

	if _, err := svc.Purchase(ctx, userActor(buyer), &dto.PurchaseRequest{ItemID: item.ID, Quantity: 2}); !errors.Is(err, apperrors.ErrUniqueItem) {
		t.Errorf("bulk unique purchase error = %v, want %v", err, apperrors.ErrUniqueItem)
	}

	if _, err := svc.Purchase(ctx, userActor(buyer), &dto.PurchaseRequest{ItemID: item.ID, Quantity: 1}); err != nil {
		t.Fatalf("first unique purchase error = %v", err)
	}
	if _, err := svc.Purchase(ctx, userActor(buyer), &dto.PurchaseRequest{ItemID: item.ID, Quantity: 1}); !errors.Is(err, apperrors.ErrUniqueItem) {
		t.Errorf("repeat unique purchase error = %v, want %v", err, apperrors.ErrUniqueItem)
	}
}

func TestStoreAdminOperations(t *testing.T) {
	ctx := context.Background()
	svc, accounts, _ := newStoreFixture()

	admin := userActor(accounts.addUser(&models.User{Username: "admin", IsAdmin: true}))
	plain := userActor(accounts.addUser(&models.User{Username: "plain"}))

	req := &dto.CreateStoreItemRequest{
		Name:        "Profile Banner",
		Description: "A custom banner",
		Price:       200,
		ItemType:    "customization",
		Rarity:      "rare",
	}

	if _, err := svc.CreateItem(ctx, plain, req); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("CreateItem() by non-admin error = %v, want %v", err, apperrors.ErrPermissionDenied)
	}

	item, err := svc.CreateItem(ctx, admin, req)
	if err != nil {
		t.Fatalf("CreateItem() error = %v", err)
	}
	if item.ID == 0 {
		t.Fatal("item was not persisted")
	}

	if err := svc.SetItemActive(ctx, plain, item.ID, false); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("SetItemActive() by non-admin error = %v, want %v", err, apperrors.ErrPermissionDenied)
	}
	if err := svc.SetItemActive(ctx, admin, item.ID, false); err != nil {
		t.Fatalf("SetItemActive() error = %v", err)
	}

	items, _, err := svc.ListItems(ctx, 0, 20)
	if err != nil {
		t.Fatalf("ListItems() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("active items = %d, want 0 after deactivation", len(items))
	}
}
