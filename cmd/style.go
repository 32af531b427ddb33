package main

import (
	"strconv"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/hashcash-ledger/domain/chain"
)

func getBlockPanel(b chain.Block) pterm.Panel {
	pbox := pterm.DefaultBox.WithHorizontalPadding(4).WithTopPadding(1).WithBottomPadding(1)
	title := pterm.LightYellow("|BLOCK " + strconv.FormatUint(b.Index, 10) + "|")
	return pterm.Panel{Data: pbox.WithTitle(title).WithTitleTopLeft().Sprint(blockInfo(b))}
}

func blockInfo(b chain.Block) string {
	previous := b.PreviousHash
	if previous == "" {
		previous = "-"
	}
	info := pterm.Sprintfln("Previous hash: %s", previous)
	info += pterm.Sprintfln("Proof: %d", b.Proof)
	if !b.Timestamp.IsZero() {
		info += pterm.Sprintfln("Mined at: %s", b.Timestamp.Format("2006-01-02 15:04:05 MST"))
	}
	if len(b.Transactions) == 0 {
		return info + pterm.FgGray.Sprint("no transactions")
	}
	return info + transactionsTable(b.Transactions)
}

func transactionsTable(txs chain.Transactions) string {
	data := pterm.TableData{{"Sender", "Recipient", "Amount"}}
	for _, tx := range txs {
		sender := tx.Sender
		if tx.IsReward() {
			sender = pterm.LightGreen(tx.Sender)
		}
		data = append(data, []string{sender, tx.Recipient, tx.Amount.String()})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err.Error()
	}
	return table
}

func printBlocks(blocks []chain.Block) {
	if len(blocks) == 0 {
		pterm.Warning.Println("The chain is empty")
		return
	}
	var rows [][]pterm.Panel
	for _, b := range blocks {
		rows = append(rows, []pterm.Panel{getBlockPanel(b)})
	}
	pterm.DefaultPanel.WithPanels(rows).Render()
	pterm.Printfln("%d blocks", len(blocks))
}

func printPending(txs chain.Transactions) {
	if len(txs) == 0 {
		pterm.Info.Println("No open transactions")
		return
	}
	pbox := pterm.DefaultBox.WithHorizontalPadding(2)
	pbox.WithTitle(pterm.LightYellow("|OPEN TRANSACTIONS|")).WithTitleTopCenter().Println(transactionsTable(txs))
}

func printParticipants(participants []string) {
	var items []pterm.BulletListItem
	for _, p := range participants {
		items = append(items, pterm.BulletListItem{Level: 0, Text: p})
	}
	pterm.DefaultBulletList.WithItems(items).Render()
}

func balanceLine(owner string, balance chain.Amount) string {
	return pterm.Sprintf("Balance of %s: %s", pterm.LightCyan(owner), balance.StringFixed(2))
}

func printBalance(owner string, balance chain.Amount) {
	pterm.Info.Println(balanceLine(owner, balance))
}
