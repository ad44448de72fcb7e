package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/hadas32/smart-parking-hub/pkg/cli"
	"github.com/hadas32/smart-parking-hub/pkg/parking"
)

var (
	ErrCommandLineArgs = errors.New("invalid command line arguments")
	ErrUnknownCommand  = errors.New("unrecognized command")
	ErrRequiresLogin   = errors.New("command requires an active session; run login first")
)

type Argument struct {
	name string
	help string
}

type Handler func(ctx context.Context, hub *cli.Hub, args map[string]string) error

type Command struct {
	help         string
	requiresAuth bool // True if the underlying endpoint requires a bearer token
	args         []Argument
	optional     []Argument
	handler      Handler
}

// Usage prints a command's arguments and help strings.
func (c *Command) Usage(name string) {
	fmt.Printf("Usage: %s", name)
	maxLength := 0
	for _, arg := range c.args {
		fmt.Printf(" %s", arg.name)
		if len(arg.name) > maxLength {
			maxLength = len(arg.name)
		}
	}
	for _, arg := range c.optional {
		fmt.Printf(" [%s]", arg.name)
		if len(arg.name) > maxLength {
			maxLength = len(arg.name)
		}
	}
	fmt.Printf("\n%s\n", c.help)
	if len(c.args)+len(c.optional) > 0 {
		fmt.Println("Arguments:")
	}
	format := fmt.Sprintf("  %%-%ds %%s\n", maxLength)
	for _, arg := range c.args {
		fmt.Printf(format, arg.name, arg.help)
	}
	for _, arg := range c.optional {
		fmt.Printf(format, arg.name, arg.help+" (optional)")
	}
}

func atoiArg(args map[string]string, name string) (int, error) {
	value, err := strconv.Atoi(args[name])
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrCommandLineArgs, name)
	}
	return value, nil
}

func floatArg(args map[string]string, name string) (float64, error) {
	value, err := strconv.ParseFloat(args[name], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrCommandLineArgs, name)
	}
	return value, nil
}

func formatTime(s string) string {
	t, err := parking.ParseTime(s)
	if err != nil || t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

func execute(hub *cli.Hub, args []string, timeout time.Duration) error {
	if len(args) == 0 {
		return errors.New("missing COMMAND")
	}
	info, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	if info.requiresAuth && !hub.Sessions.LoggedIn() {
		return ErrRequiresLogin
	}
	if len(args)-1 < len(info.args) || len(args)-1 > len(info.args)+len(info.optional) {
		writeErr("Invalid number of command line arguments: %d (%d required, %d optional).",
			len(args)-1, len(info.args), len(info.optional))
		return ErrCommandLineArgs
	}

	keywords := make(map[string]string)
	for i, argInfo := range info.args {
		keywords[argInfo.name] = args[i+1]
	}
	index := len(info.args) + 1
	for _, argInfo := range info.optional {
		if index >= len(args) {
			break
		}
		keywords[argInfo.name] = args[index]
		index++
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return info.handler(ctx, hub, keywords)
}

var commands = map[string]*Command{
	"login": {
		help: "Log in and store the bearer token",
		args: []Argument{
			{name: "USERNAME", help: "Operator user name."},
		},
		optional: []Argument{
			{name: "PASSWORD", help: "Password; prompted when omitted."},
		},
		handler: func(ctx context.Context, hub *cli.Hub, args map[string]string) error {
			password, ok := args["PASSWORD"]
			if !ok {
				var err error
				if password, err = cli.PromptPassword("Password"); err != nil {
					return err
				}
			}
			creds := parking.Login{UserName: args["USERNAME"], Password: password}
			if err := hub.Sessions.Login(ctx, creds); err != nil {
				return err
			}
			fmt.Println("Logged in.")
			return nil
		},
	},
	"logout": {
		help: "Discard the stored bearer token and cached data",
		handler: func(ctx context.Context, hub *cli.Hub, args map[string]string) error {
			hub.Sessions.Logout()
			fmt.Println("Logged out.")
			return nil
		},
	},
	"status": {
		help:         "Show totals: parkings, parked cars, free spots",
		requiresAuth: true,
		handler: func(ctx context.Context, hub *cli.Hub, args map[string]string) error {
			parkings, err := hub.Cache.Parkings(ctx)
			if err != nil {
				return err
			}
			spots, err := hub.Cache.Spots(ctx)
			if err != nil {
				return err
			}
			cars, err := hub.Cache.Cars(ctx)
			if err != nil {
				return err
			}
			free := 0
			for _, s := range spots {
				if !s.IsOccupied {
					free++
				}
			}
			fmt.Printf("Parkings:     %d\n", len(parkings))
			fmt.Printf("Cars parked:  %d\n", len(cars))
			fmt.Printf("Spots free:   %d of %d\n", free, len(spots))
			return nil
		},
	},
	"parkings": {
		help: "List parking locations",
		handler: func(ctx context.Context, hub *cli.Hub, args map[string]string) error {
			parkings, err := hub.Cache.Parkings(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tLOCATION\tAVAILABLE\tPRICE/H")
			for _, p := range parkings {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.2f\n", p.ID, p.Name, p.Location, p.AvailableSpots, p.PricePerHour)
			}
			return w.Flush()
		},
	},
	"parking-add": {
		help:         "Create a parking location",
		requiresAuth: true,
		args: []Argument{
			{name: "NAME", help: "Display name."},
			{name: "LOCATION", help: "Street address or description."},
			{name: "SPOTS", help: "Total number of spots."},
			{name: "PRICE", help: "Price per hour."},
		},
		handler: func(ctx context.Context, hub *cli.Hub, args map[string]string) error {
			spots, err := atoiArg(args, "SPOTS")
			if err != nil {
				return err
			}
			price, err := floatArg(args, "PRICE")
			if err != nil {
				return err
			}
			p, err := hub.Cache.CreateParking(ctx, parking.ParkingPost{
				Name:         args["NAME"],
				Location:     args["LOCATION"],
				TotalSpots:   spots,
				PricePerHour: price,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created parking %d (%s).\n", p.ID, p.Name)
			return nil
		},
	},
	"parking-edit": {
		help: "Update a parking's name, capacity, and price",
		args: []Argument{
			{name: "ID", help: "Parking id."},
			{name: "NAME", help: "Display name."},
			{name: "SPOTS", help: "Total number of spots."},
			{name: "PRICE", help: "Price per hour."},
		},
		handler: func(ctx context.Context, hub *cli.Hub, args map[string]string) error {
			id, err := atoiArg(args, "ID")
			if err != nil {
				return err
			}
			spots, err := atoiArg(args, "SPOTS")
			if err != nil {
				return err
			}
			price, err := floatArg(args, "PRICE")
			if err != nil {
				return err
			}
			p, err := hub.Cache.UpdateParking(ctx, id, parking.ParkingPut{
				Name:         args["NAME"],
				TotalSpots:   spots,
				PricePerHour: price,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Updated parking %d.\n", p.ID)
			return nil
		},
	},
	"parking-rm": {
		help:         "Delete a parking location and its spots",
		requiresAuth: true,
		args: []Argument{
			{name: "ID", help: "Parking id."},
		},
		handler: func(ctx context.Context, hub *cli.Hub, args map[string]string) error {
			id, err := atoiArg(args, "ID")
			if err != nil {
				return err
			}
			if err := hub.Cache.DeleteParking(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Deleted parking %d.\n", id)
			return nil
		},
	},
	"cars": {
		help:         "List cars currently checked in",
		requiresAuth: true,
		handler: func(ctx context.Context, hub *cli.Hub, args map[string]string) error {
			cars, err := hub.Cache.Cars(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tLICENSE\tOWNER\tENTRY\tPAYMENT")
			for _, c := range cars {
				payment := "-"
				if c.TotalPayment > 0 {
					payment = fmt.Sprintf("%.2f", c.TotalPayment)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.LicenseNum, c.OwnerName, formatTime(c.EntryTime), payment)
			}
			return w.Flush()
		},
	},
	"check-in": {
		help: "Check a car in, occupying a free spot",
		args: []Argument{
			{name: "LICENSE", help: "License plate number."},
			{name: "OWNER", help: "Owner name."},
			{name: "PARKING", help: "Parking id."},
		},
		handler: func(ctx context.Context, hub *cli.Hub, args map[string]string) error {
			parkingID, err := atoiArg(args, "PARKING")
			if err != nil {
				return err
			}
			car, err := hub.Cache.CheckIn(ctx, parking.CarPost{
				LicenseNum: args["LICENSE"],
				OwnerName:  args["OWNER"],
				ParkingID:  parkingID,
			})
			if err != nil {
				if parking.IsValidation(err) {
					return fmt.Errorf("check-in rejected (car may already be parked): %w", err)
				}
				return err
			}
			fmt.Printf("Checked in car %d (%s).\n", car.ID, car.LicenseNum)
			return nil
		},
	},
	"check-out": {
		help:         "Check a car out, freeing its spot",
		requiresAuth: true,
		args: []Argument{
			{name: "ID", help: "Car id."},
		},
		handler: func(ctx context.Context, hub *cli.Hub, args map[string]string) error {
			id, err := atoiArg(args, "ID")
			if err != nil {
				return err
			}
			receipt, err := hub.Cache.CheckOut(ctx, id)
			if err != nil {
				return err
			}
			if receipt.Message != "" {
				fmt.Println(receipt.Message)
			}
			fmt.Printf("Payment due: %s\n", receipt.PaymentDue)
			return nil
		},
	},
	"car-edit": {
		help: "Change a parked car's owner name",
		args: []Argument{
			{name: "ID", help: "Car id."},
			{name: "OWNER", help: "New owner name."},
		},
		handler: func(ctx context.Context, hub *cli.Hub, args map[string]string) error {
			id, err := atoiArg(args, "ID")
			if err != nil {
				return err
			}
			car, err := hub.Cache.RenameOwner(ctx, id, parking.CarPut{OwnerName: args["OWNER"]})
			if err != nil {
				return err
			}
			fmt.Printf("Updated car %d.\n", car.ID)
			return nil
		},
	},
	"spots": {
		help: "List spots and their occupancy",
		handler: func(ctx context.Context, hub *cli.Hub, args map[string]string) error {
			spots, err := hub.Cache.Spots(ctx)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNUMBER\tPARKING\tOCCUPIED")
			for _, s := range spots {
				parkingName := "-"
				if s.Parking != nil {
					parkingName = s.Parking.Name
				}
				fmt.Fprintf(w, "%d\t%d\t%s\t%t\n", s.ID, s.SpotNumber, parkingName, s.IsOccupied)
			}
			return w.Flush()
		},
	},
	"spot-add": {
		help:         "Add a spot to a parking",
		requiresAuth: true,
		args: []Argument{
			{name: "NUMBER", help: "Spot number within the parking."},
			{name: "PARKING", help: "Parking id."},
		},
		handler: func(ctx context.Context, hub *cli.Hub, args map[string]string) error {
			number, err := atoiArg(args, "NUMBER")
			if err != nil {
				return err
			}
			parkingID, err := atoiArg(args, "PARKING")
			if err != nil {
				return err
			}
			s, err := hub.Cache.CreateSpot(ctx, parking.SpotPost{SpotNumber: number, ParkingID: parkingID})
			if err != nil {
				return err
			}
			fmt.Printf("Created spot %d.\n", s.ID)
			return nil
		},
	},
	"spot-edit": {
		help: "Override a spot's occupancy",
		args: []Argument{
			{name: "ID", help: "Spot id."},
			{name: "OCCUPIED", help: "true or false."},
		},
		optional: []Argument{
			{name: "CAR", help: "Occupying car id; required when OCCUPIED is true."},
		},
		handler: func(ctx context.Context, hub *cli.Hub, args map[string]string) error {
			id, err := atoiArg(args, "ID")
			if err != nil {
				return err
			}
			occupied, err := strconv.ParseBool(args["OCCUPIED"])
			if err != nil {
				return fmt.Errorf("%w: OCCUPIED must be true or false", ErrCommandLineArgs)
			}
			var carID int
			if _, ok := args["CAR"]; ok {
				if carID, err = atoiArg(args, "CAR"); err != nil {
					return err
				}
			}
			s, err := hub.Cache.UpdateSpot(ctx, id, parking.SpotPut{IsOccupied: occupied, CarID: carID})
			if err != nil {
				return err
			}
			fmt.Printf("Updated spot %d.\n", s.ID)
			return nil
		},
	},
	"spot-rm": {
		help:         "Remove a spot",
		requiresAuth: true,
		args: []Argument{
			{name: "ID", help: "Spot id."},
		},
		handler: func(ctx context.Context, hub *cli.Hub, args map[string]string) error {
			id, err := atoiArg(args, "ID")
			if err != nil {
				return err
			}
			if err := hub.Cache.DeleteSpot(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Deleted spot %d.\n", id)
			return nil
		},
	},
}
