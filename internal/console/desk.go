package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burgershop/internal/domain"
	"github.com/vladislavdragonenkov/burgershop/internal/service/orders"
)

const (
	msgUpdateFailed   = "Failed to update! Order not found or not in PREPARING status."
	msgUnknownOption  = "Unknown option, try again."
	statusPromptLabel = "New Status (preparing/delivered/cancelled) : "
)

// Desk показывает консольное меню кассы поверх orders.Service.
type Desk struct {
	svc    *orders.Service
	in     *bufio.Scanner
	out    io.Writer
	logger *log.Entry

	lines <-chan inputLine
}

// inputLine одна прочитанная строка или ошибка чтения.
type inputLine struct {
	text string
	err  error
}

// NewDesk создаёт кассу, читающую команды из in и печатающую в out.
func NewDesk(svc *orders.Service, in io.Reader, out io.Writer, logger *log.Entry) *Desk {
	if logger == nil {
		logger = log.WithField("component", "desk")
	}
	return &Desk{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
}

// Run показывает главное меню до выбора Exit, конца ввода или отмены ctx.
// Отмена ctx прерывает и ожидание ввода. Run не рассчитан на повторный вызов.
func (d *Desk) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.lines = d.readLines(ctx)

	d.println("Welcome to iHungry Burger Shop")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		d.printMenu()
		choice, err := d.prompt(ctx, "Choose option : ")
		if err != nil {
			return ignoreEOF(err)
		}

		switch choice {
		case "1":
			err = d.placeOrder(ctx)
		case "2":
			d.bestCustomers()
		case "3":
			err = d.searchOrder(ctx)
		case "4":
			err = d.searchCustomer(ctx)
		case "5":
			err = d.viewOrders(ctx)
		case "6":
			err = d.updateQuantity(ctx)
		case "7":
			err = d.updateStatus(ctx)
		case "0":
			d.println("Bye!")
			return nil
		default:
			d.println(msgUnknownOption)
		}
		if err != nil {
			return ignoreEOF(err)
		}
	}
}

func (d *Desk) printMenu() {
	d.println("")
	d.println("=== iHungry Burger Shop ===")
	d.println("  1) Place Order")
	d.println("  2) Search Best Customers")
	d.println("  3) Search Order")
	d.println("  4) Search Customer")
	d.println("  5) View Orders")
	d.println("  6) Update Order Quantity")
	d.println("  7) Update Order Status")
	d.println("  0) Exit")
}

func (d *Desk) placeOrder(ctx context.Context) error {
	orderID, customerID := d.svc.NextIDs()
	d.println("--- Place Order ---")
	d.printf("Order Id : %s\n", orderID)
	d.printf("Customer Id : %s\n", customerID)

	name, err := d.prompt(ctx, "Customer Name : ")
	if err != nil {
		return err
	}
	rawQty, err := d.prompt(ctx, "Burger QTY : ")
	if err != nil {
		return err
	}

	if rawQty == "" {
		d.println("Please enter burger quantity!")
		return nil
	}
	if name == "" {
		d.println("Please enter customer name!")
		return nil
	}
	qty, err := domain.ParseQuantity(rawQty)
	if err != nil {
		d.println(quantityMessage(rawQty,
			"Please enter a valid number for quantity!",
			"Please enter a valid quantity (greater than 0)!"))
		return nil
	}

	d.printf("NET Total : %s\n", domain.FormatAmount(int64(qty)*domain.BurgerUnitPrice))

	order, err := d.svc.PlaceOrder(ctx, name, qty)
	if err != nil {
		d.logger.WithError(err).Warn("place order rejected")
		d.printf("Order was not placed: %v\n", err)
		return nil
	}

	d.println("Order Placed Successfully!")
	d.printf("Order ID: %s\n", order.ID)
	d.printf("Customer ID: %s\n", order.Customer.ID)
	d.printf("Customer Name: %s\n", order.Customer.Name)
	d.printf("Quantity: %d burgers\n", order.Quantity)
	d.printf("Total: %s\n", domain.FormatAmount(order.Total()))
	return nil
}

func (d *Desk) bestCustomers() {
	d.println("--- Search Best Customers ---")
	ranking := d.svc.TopCustomers()
	if len(ranking) == 0 {
		d.println("No customers yet.")
		return
	}

	tw := d.table("Customer ID", "Name", "Total")
	for _, entry := range ranking {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", entry.Customer.ID, entry.Customer.Name, domain.FormatAmount(entry.Total))
	}
	_ = tw.Flush()
}

func (d *Desk) searchOrder(ctx context.Context) error {
	d.println("--- Search Order Details ---")
	orderID, err := d.prompt(ctx, "Enter OrderID : ")
	if err != nil {
		return err
	}
	if orderID == "" {
		d.println("Please enter an Order ID!")
		return nil
	}

	order, err := d.svc.FindOrder(orderID)
	if err != nil {
		d.println("Order not found!")
		return nil
	}

	d.printf("Order ID : %s\n", order.ID)
	d.printf("Customer ID : %s\n", order.Customer.ID)
	d.printf("Name : %s\n", order.Customer.Name)
	d.printf("QTY : %d\n", order.Quantity)
	d.printf("Total : %s\n", domain.FormatAmount(order.Total()))
	d.printf("Order Status : %s\n", order.Status)
	return nil
}

func (d *Desk) searchCustomer(ctx context.Context) error {
	d.println("--- Search Customer ---")
	customerID, err := d.prompt(ctx, "Customer ID : ")
	if err != nil {
		return err
	}
	if customerID == "" {
		d.println("Please enter a Customer ID!")
		return nil
	}

	found, err := d.svc.CustomerOrders(customerID)
	if err != nil || len(found) == 0 {
		d.printf("No orders found for Customer ID: %s\n", customerID)
		return nil
	}

	d.printf("Customer : %s (%s)\n", found[0].Customer.Name, found[0].Customer.ID)
	tw := d.table("Order ID", "Quantity", "Status", "Total")
	for _, order := range found {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", order.ID, order.Quantity, order.Status, domain.FormatAmount(order.Total()))
	}
	_ = tw.Flush()
	return nil
}

func (d *Desk) viewOrders(ctx context.Context) error {
	d.println("--- View Orders ---")
	d.println("  1) Delivered Orders")
	d.println("  2) Processing Orders")
	d.println("  3) Canceled Orders")
	d.println("  4) All Orders")
	choice, err := d.prompt(ctx, "Choose option : ")
	if err != nil {
		return err
	}

	var (
		title string
		list  []domain.Order
	)
	switch choice {
	case "1":
		title = "Delivered Orders"
		list, err = d.svc.OrdersByStatus(domain.OrderStatusDelivered)
	case "2":
		title = "Processing Orders"
		list, err = d.svc.OrdersByStatus(domain.OrderStatusPreparing)
	case "3":
		title = "Canceled Orders"
		list, err = d.svc.OrdersByStatus(domain.OrderStatusCancelled)
	case "4":
		title = "All Orders"
		list = d.svc.AllOrders()
	default:
		d.println(msgUnknownOption)
		return nil
	}
	if err != nil {
		d.printf("Cannot list orders: %v\n", err)
		return nil
	}

	d.printf("--- %s ---\n", title)
	if len(list) == 0 {
		d.println("No orders.")
		return nil
	}
	tw := d.table("Order Id", "Customer Id", "Name", "Order QTY", "Status", "Total")
	for _, order := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			order.ID, order.Customer.ID, order.Customer.Name, order.Quantity, order.Status, domain.FormatAmount(order.Total()))
	}
	_ = tw.Flush()
	return nil
}

func (d *Desk) updateQuantity(ctx context.Context) error {
	d.println("--- Update Order Quantity ---")
	orderID, err := d.prompt(ctx, "Order ID : ")
	if err != nil {
		return err
	}
	rawQty, err := d.prompt(ctx, "New Quantity : ")
	if err != nil {
		return err
	}
	if orderID == "" || rawQty == "" {
		d.println("Please enter Order ID and new quantity!")
		return nil
	}

	qty, err := domain.ParseQuantity(rawQty)
	if err != nil {
		d.println(quantityMessage(rawQty, "Invalid quantity!", "Quantity must be positive!"))
		return nil
	}

	if _, err := d.svc.UpdateQuantity(ctx, orderID, qty); err != nil {
		d.println(msgUpdateFailed)
		return nil
	}
	d.println("Quantity updated successfully!")
	return nil
}

func (d *Desk) updateStatus(ctx context.Context) error {
	d.println("--- Update Order Status ---")
	orderID, err := d.prompt(ctx, "Order ID : ")
	if err != nil {
		return err
	}
	if orderID == "" {
		d.println("Please enter Order ID!")
		return nil
	}
	rawStatus, err := d.prompt(ctx, statusPromptLabel)
	if err != nil {
		return err
	}

	status, err := domain.ParseOrderStatus(rawStatus)
	if err != nil {
		d.println("Unknown status!")
		return nil
	}

	if _, err := d.svc.UpdateStatus(ctx, orderID, status); err != nil {
		d.println(msgUpdateFailed)
		return nil
	}
	d.println("Status updated successfully!")
	return nil
}

// prompt печатает приглашение и ждёт одну строку без пробелов по краям.
func (d *Desk) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(d.out, label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-d.lines:
		if !ok {
			return "", io.EOF
		}
		if line.err != nil {
			return "", line.err
		}
		return strings.TrimSpace(line.text), nil
	}
}

// readLines читает ввод в отдельной горутине: Scan на терминале не прерывается,
// поэтому prompt ждёт строку вместе с ctx.Done.
func (d *Desk) readLines(ctx context.Context) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		defer close(lines)
		for d.in.Scan() {
			select {
			case lines <- inputLine{text: d.in.Text()}:
			case <-ctx.Done():
				return
			}
		}
		err := d.in.Err()
		if err == nil {
			err = io.EOF
		}
		select {
		case lines <- inputLine{err: err}:
		case <-ctx.Done():
		}
	}()
	return lines
}

func (d *Desk) table(columns ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(d.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	return tw
}

func (d *Desk) println(line string) {
	fmt.Fprintln(d.out, line)
}

func (d *Desk) printf(format string, args ...any) {
	fmt.Fprintf(d.out, format, args...)
}

// quantityMessage различает нечисловой ввод и число меньше единицы.
func quantityMessage(raw, notNumber, notPositive string) string {
	if _, err := strconv.Atoi(raw); err != nil {
		return notNumber
	}
	return notPositive
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
