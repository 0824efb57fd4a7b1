package conversation

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/orderalert/pkg/core"
)

// AccountTable formats accounts as a text table
func AccountTable(accounts []*core.Account) string {
	tableString := &strings.Builder{}
	table := tablewriter.NewWriter(tableString)
	table.SetHeader([]string{"ID", "Username", "Login", "Role", "Banned"})
	table.SetAutoFormatHeaders(false)

	for _, account := range accounts {
		banned := "no"
		if account.Banned {
			banned = "yes"
		}

		table.Append([]string{
			strconv.FormatInt(account.TelegramID, 10),
			account.DisplayName(),
			account.Login,
			string(account.Role),
			banned,
		})
	}

	table.Render()
	return tableString.String()
}
