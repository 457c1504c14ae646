// Package main is the interactive storefront client: a shell over the
// state containers for browsing the catalog, managing the cart and
// placing orders.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cortexcart/storefront/internal/client/app"
	"github.com/cortexcart/storefront/internal/client/state"
	"github.com/cortexcart/storefront/internal/config"
	"github.com/cortexcart/storefront/internal/logger"
)

var (
	version   string
	buildDate string
)

var showVer = flag.Bool("version", false, "show build version and date")

const helpText = `Available commands:
  login <email> <password>      sign in
  register <email> <password> <name...>
  logout                        sign out
  whoami                        show the current user
  profile <name|address|phone> <value...>
  users                         list users (admin)
  toggle <user-id>              toggle a user's active flag (admin)
  products                      list the catalog
  product <id>                  show one product
  addproduct <name> <price> <stock> <category>
  add <product-id> [qty]        add to cart
  remove <product-id>           remove from cart
  qty <product-id> <n>          set a cart line's quantity
  cart                          show the cart
  checkout <address...>         place an order from the cart
  orders                        list my orders
  allorders                     list every order (admin)
  help, exit`

// repl runs the interactive shell loop, dispatching commands to the
// state containers.
func repl(ctx context.Context, a *app.App) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("storefront> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			fmt.Println(helpText)
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <email> <password>")
				continue
			}
			if err := a.Session.Login(ctx, args[1], args[2]); err != nil {
				fmt.Println("Error:", a.Session.Err())
				continue
			}
			fmt.Println("Signed in as", a.Session.User().Name)
		case "register":
			if len(args) < 4 {
				fmt.Println("Usage: register <email> <password> <name...>")
				continue
			}
			in := state.RegisterInput{
				Email:    args[1],
				Password: args[2],
				Name:     strings.Join(args[3:], " "),
			}
			if err := a.Session.Register(ctx, in); err != nil {
				fmt.Println("Error:", a.Session.Err())
				continue
			}
			fmt.Println("Registered and signed in as", a.Session.User().Name)
		case "logout":
			a.Session.Logout()
			fmt.Println("Signed out")
		case "whoami":
			user := a.Session.User()
			if user == nil {
				fmt.Println("Not signed in")
				continue
			}
			fmt.Printf("%s <%s> role=%s active=%v\n", user.Name, user.Email, user.Role, user.IsActive)
		case "profile":
			if len(args) < 3 {
				fmt.Println("Usage: profile <name|address|phone> <value...>")
				continue
			}
			upd := state.ProfileUpdate{}
			value := strings.Join(args[2:], " ")
			switch args[1] {
			case "name":
				upd.Name = value
			case "address":
				upd.Address = value
			case "phone":
				upd.Phone = value
			default:
				fmt.Println("Unknown profile field:", args[1])
				continue
			}
			if err := a.Session.UpdateProfile(ctx, upd); err != nil {
				fmt.Println("Error:", a.Session.Err())
				continue
			}
			fmt.Println("Profile updated")
		case "users":
			if err := a.Session.FetchUsers(ctx); err != nil {
				fmt.Println("Error:", a.Session.Err())
				continue
			}
			for _, u := range a.Session.Users() {
				fmt.Printf("%s  %s <%s> role=%s active=%v\n", u.ID, u.Name, u.Email, u.Role, u.IsActive)
			}
		case "toggle":
			if len(args) < 2 {
				fmt.Println("Usage: toggle <user-id>")
				continue
			}
			if err := a.Session.ToggleUserStatus(ctx, args[1]); err != nil {
				fmt.Println("Error:", a.Session.Err())
				continue
			}
			fmt.Println("User status toggled")
		case "products":
			if err := a.Products.FetchProducts(ctx); err != nil {
				fmt.Println("Error:", a.Products.Err())
				continue
			}
			for _, p := range a.Products.Products() {
				fmt.Printf("%s  %-24s %8.2f  stock=%d  %s\n", p.ID, p.Name, p.Price, p.Stock, p.Category)
			}
		case "product":
			if len(args) < 2 {
				fmt.Println("Usage: product <id>")
				continue
			}
			p, err := a.Products.FetchProduct(ctx, args[1])
			if err != nil {
				fmt.Println("Error:", a.Products.Err())
				continue
			}
			fmt.Printf("%s (%.2f, stock %d)\n%s\n", p.Name, p.Price, p.Stock, p.Description)
		case "addproduct":
			if len(args) < 5 {
				fmt.Println("Usage: addproduct <name> <price> <stock> <category>")
				continue
			}
			price, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				fmt.Println("Invalid price:", args[2])
				continue
			}
			stock, err := strconv.Atoi(args[3])
			if err != nil {
				fmt.Println("Invalid stock:", args[3])
				continue
			}
			in := state.ProductInput{Name: args[1], Price: price, Stock: stock, Category: args[4]}
			if err := a.Products.AddProduct(ctx, in); err != nil {
				fmt.Println("Error:", a.Products.Err())
				continue
			}
			// Creation does not update the local catalog, refresh it.
			if err := a.Products.FetchProducts(ctx); err != nil {
				fmt.Println("Error:", a.Products.Err())
				continue
			}
			fmt.Println("Product added")
		case "add":
			if len(args) < 2 {
				fmt.Println("Usage: add <product-id> [qty]")
				continue
			}
			qty := 1
			if len(args) > 2 {
				n, err := strconv.Atoi(args[2])
				if err != nil {
					fmt.Println("Invalid quantity:", args[2])
					continue
				}
				qty = n
			}
			p, err := a.Products.FetchProduct(ctx, args[1])
			if err != nil {
				fmt.Println("Error:", a.Products.Err())
				continue
			}
			a.Cart.AddItem(p, qty)
			fmt.Printf("Cart: %d item(s)\n", a.Cart.TotalItems())
		case "remove":
			if len(args) < 2 {
				fmt.Println("Usage: remove <product-id>")
				continue
			}
			a.Cart.RemoveItem(args[1])
			fmt.Printf("Cart: %d item(s)\n", a.Cart.TotalItems())
		case "qty":
			if len(args) < 3 {
				fmt.Println("Usage: qty <product-id> <n>")
				continue
			}
			n, err := strconv.Atoi(args[2])
			if err != nil {
				fmt.Println("Invalid quantity:", args[2])
				continue
			}
			a.Cart.UpdateQuantity(args[1], n)
			fmt.Printf("Cart: %d item(s)\n", a.Cart.TotalItems())
		case "cart":
			items := a.Cart.Items()
			if len(items) == 0 {
				fmt.Println("Your cart is empty")
				continue
			}
			for _, item := range items {
				fmt.Printf("%s  %-24s x%d  %8.2f\n",
					item.Product.ID, item.Product.Name, item.Quantity, item.Subtotal())
			}
			fmt.Printf("Total: %.2f (%d items)\n", a.Cart.TotalPrice(), a.Cart.TotalItems())
		case "checkout":
			if len(args) < 2 {
				fmt.Println("Usage: checkout <address...>")
				continue
			}
			orderID, err := a.Checkout(ctx, strings.Join(args[1:], " "))
			if err != nil {
				fmt.Println("Error:", a.Orders.Err())
				continue
			}
			fmt.Println("Order placed:", orderID)
		case "orders":
			if err := a.Orders.FetchOrders(ctx); err != nil {
				fmt.Println("Error:", a.Orders.Err())
				continue
			}
			printOrders(a)
		case "allorders":
			if err := a.Orders.FetchAllOrders(ctx); err != nil {
				fmt.Println("Error:", a.Orders.Err())
				continue
			}
			printOrders(a)
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}

		if a.UI.ConsumeLoginRedirect() {
			fmt.Println("Session expired, please login again")
		}
	}
}

func printOrders(a *app.App) {
	orders := a.Orders.Orders()
	if len(orders) == 0 {
		fmt.Println("No orders yet")
		return
	}
	for _, o := range orders {
		fmt.Printf("%s  %s  %8.2f  %s\n",
			o.ID, o.CreatedAt.Format("2006-01-02 15:04"), o.TotalAmount, o.Status)
		for _, item := range o.Items {
			fmt.Printf("    %s x%d @ %.2f\n", item.Name, item.Quantity, item.Price)
		}
	}
}

func main() {
	options := config.Parse()

	if *showVer {
		fmt.Printf("Storefront Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("error"); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}

	a, err := app.New(options, log.Log)
	if err != nil {
		log.Log.Fatal("failed to start client", zap.Error(err))
	}

	ctx := context.Background()

	switch a.Guard.State() {
	case state.GuardAuthenticated:
		// Re-validate the restored session; an expired token clears it.
		_ = a.Session.FetchCurrentUser(ctx)
		if user := a.Session.User(); user != nil {
			fmt.Println("Welcome back,", user.Name)
		} else {
			fmt.Println("Session expired, please login")
		}
	case state.GuardUnauthenticated:
		fmt.Println("Not signed in. Use 'login' or 'register'.")
	}

	repl(ctx, a)
}
