// Package menu is the interactive text front end: a top-level user-type
// choice, an owner menu and a customer menu, all driven line by line.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	models "shop-inventory/model"
	"shop-inventory/service"
	"shop-inventory/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const rule = "------------------------------------------------------------"

type Menu struct {
	svc service.ServiceInterface
	in  *bufio.Scanner
	out io.Writer
}

func New(svc service.ServiceInterface, in io.Reader, out io.Writer) *Menu {
	return &Menu{svc: svc, in: bufio.NewScanner(in), out: out}
}

// Run drives the top-level menu until the user exits or input ends.
func (m *Menu) Run() error {
	for {
		m.printf("\n=== PyShop Main Menu ===\n")
		m.printf("Select User Type:\n1.Owner\n2.Customer\n3.Exit\n")
		choice, err := m.prompt("Enter your choice: ")
		if err != nil {
			return ignoreEOF(err)
		}

		switch choice {
		case "1":
			err = m.owner()
		case "2":
			err = m.customer()
		case "3":
			m.printf("Exiting System..Thank you for shopping\n")
			return nil
		default:
			m.printf("Invalid choice. Please enter 1, 2, or 3.\n")
		}
		if err != nil {
			return ignoreEOF(err)
		}
	}
}

func (m *Menu) owner() error {
	for {
		m.printf("\n=== Welcome Owner ===\n")
		m.printf("1.Display Inventory\n2.Add/Update Stock\n3.Quit\n")
		choice, err := m.prompt("Enter your choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			m.displayInventory()
		case "2":
			if err := m.addOrUpdateProduct(); err != nil {
				return err
			}
		case "3":
			if err := m.svc.Save(); err != nil {
				m.printf("Error saving inventory: %v\n", err)
			}
			return nil
		default:
			m.printf("Invalid choice. Please enter 1, 2, or 3.\n")
		}
	}
}

func (m *Menu) addOrUpdateProduct() error {
	sku, err := m.prompt("Enter SKU to add/update: ")
	if err != nil {
		return err
	}
	sku = store.NormalizeSKU(sku)
	name, err := m.prompt(fmt.Sprintf("Enter product name for %s: ", sku))
	if err != nil {
		return err
	}
	priceStr, err := m.prompt("Enter price: ")
	if err != nil {
		return err
	}
	stockStr, err := m.prompt("Enter stock quantity: ")
	if err != nil {
		return err
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		m.printf("Invalid input: price %q is not a number.\n", priceStr)
		return nil
	}
	stock, err := strconv.Atoi(stockStr)
	if err != nil {
		m.printf("Invalid input: stock %q is not a whole number.\n", stockStr)
		return nil
	}

	if _, err := m.svc.UpsertProduct(sku, name, price, stock); err != nil {
		if errors.Is(err, store.ErrInvalidInput) {
			m.printf("Rejected: %v\n", err)
		} else {
			m.printf("Updated %s in memory, but saving failed: %v\n", sku, err)
		}
		return nil
	}
	m.printf("Updated inventory for %s.\n", sku)
	return nil
}

func (m *Menu) customer() error {
	session := uuid.NewString()
	defer func() {
		if m.svc.EndSession(session) {
			m.printf("Don't forget your items in your cart!\n")
		}
	}()

	for {
		m.printf("\n=== Welcome Customer ===\n")
		m.printf("1.Shop\n2.View Cart\n3.Checkout\n4.Quit Shopping\n")
		choice, err := m.prompt("Enter your choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			if err := m.shop(session); err != nil {
				return err
			}
		case "2":
			m.viewCart(session)
		case "3":
			m.checkout(session)
		case "4":
			return nil
		default:
			m.printf("Invalid choice. Please enter 1, 2, 3, or 4.\n")
		}
	}
}

func (m *Menu) shop(session string) error {
	products := m.displayInventory()
	sku, err := m.prompt("Enter SKU to add to cart: ")
	if err != nil {
		return err
	}
	sku = store.NormalizeSKU(sku)
	qtyStr, err := m.prompt("Enter quantity: ")
	if err != nil {
		return err
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		m.printf("Invalid quantity input: %q is not a whole number.\n", qtyStr)
		return nil
	}

	if err := m.svc.AddToCart(session, sku, qty); err != nil {
		m.printf("Error adding item: %v\n", err)
		return nil
	}
	name := sku
	for _, p := range products {
		if p.SKU == sku {
			name = p.Name
		}
	}
	m.printf("Added %d of '%s' to cart.\n", qty, name)
	return nil
}

func (m *Menu) viewCart(session string) {
	view, err := m.svc.GetCart(session)
	if err != nil {
		m.printf("Error reading cart: %v\n", err)
		return
	}
	if view.Empty() {
		m.printf("Your cart is empty.\n")
		return
	}
	m.printf("\n--- Your Shopping Cart ---\n")
	for _, l := range view.Lines {
		m.printf("%-20s (SKU: %s) x %-3d = $%s\n", l.Name, l.SKU, l.Quantity, l.Subtotal.StringFixed(2))
	}
	for _, it := range view.Missing {
		m.printf("Unknown item (SKU: %s) x %d (Error: Item missing from shop)\n", it.SKU, it.Quantity)
	}
	m.printf("%s\n", rule[:35])
	m.printf("Total Price: $%s\n", view.Total.StringFixed(2))
	m.printf("%s\n", rule[:35])
}

func (m *Menu) checkout(session string) {
	m.printf("\nProcessing Checkout...\n")
	inv, err := m.svc.Checkout(session)
	if inv == nil {
		if errors.Is(err, service.ErrEmptyCart) {
			m.printf("Your cart is empty.\n")
			return
		}
		m.printf("\nCheckout failed due to inventory issue: %v\n", err)
		m.printf("Cart remains unchanged. Please adjust your order.\n")
		return
	}
	if inv.Receipt != "" {
		m.printf("Receipt saved to %s\n", inv.Receipt)
	}
	if err != nil {
		m.printf("Warning: %v\n", err)
	}
	m.printf("Checkout successful. Invoice generated and stock updated. Total: $%s\n", inv.Total.StringFixed(2))
}

func (m *Menu) displayInventory() []models.Product {
	products := m.svc.ListProducts()
	m.printf("\n--- PyShop Inventory ---\n")
	m.printf("%-10s | %-20s | %-10s | %-5s\n", "SKU", "Name", "Price", "Stock")
	m.printf("%s\n", rule)
	for _, p := range products {
		m.printf("%-10s | %-20s | $%-9s | %-5d\n", p.SKU, p.Name, p.Price.StringFixed(2), p.Stock)
	}
	m.printf("%s\n", rule)
	return products
}

func (m *Menu) prompt(label string) (string, error) {
	m.printf("%s", label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) printf(format string, args ...interface{}) {
	fmt.Fprintf(m.out, format, args...)
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
