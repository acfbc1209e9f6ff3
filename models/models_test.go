package models_test

import (
	"testing"

	"github.com/rafaelmdutra/pix-ledger/models"
)

func TestTransactionCategoryIsValid(t *testing.T) {
	valid := []models.TransactionCategory{
		models.CategoryFood, models.CategoryTransport, models.CategoryEntertainment,
		models.CategoryExpenses, models.CategoryOther,
	}
	for _, c := range valid {
		if !c.IsValid() {
			t.Errorf("%s should be valid", c)
		}
	}
	if models.TransactionCategory("GROCERIES").IsValid() {
		t.Error("GROCERIES is not a known category")
	}
	if models.TransactionCategory("").IsValid() {
		t.Error("empty category is not valid")
	}
}

func TestExpenseStatusIsValid(t *testing.T) {
	for _, s := range []models.ExpenseStatus{
		models.ExpenseStatusPending, models.ExpenseStatusFailed, models.ExpenseStatusSuccess,
	} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if models.ExpenseStatus("DONE").IsValid() {
		t.Error("DONE is not a known status")
	}
}

func TestPixKeyTypeIsValid(t *testing.T) {
	for _, k := range []models.PixKeyType{
		models.PixKeyTypeEmail, models.PixKeyTypeCPF, models.PixKeyTypePhone,
		models.PixKeyTypeRandom, models.PixKeyTypeOther,
	} {
		if !k.IsValid() {
			t.Errorf("%s should be valid", k)
		}
	}
	if models.PixKeyType("CNPJ").IsValid() {
		t.Error("CNPJ is not a known key type")
	}
}

func TestEmptyAgent(t *testing.T) {
	agent := models.EmptyAgent()
	if agent.Attributes == nil || len(agent.Attributes) != 0 {
		t.Errorf("expected empty attributes, got %+v", agent.Attributes)
	}
}
