package main

// CLI is the root Kong command tree. Subcommand names match the surface
// enumerated in spec.md §6, plus a config subcommand for the CLI's own
// config file.
type CLI struct {
	Globals

	UploadImage     UploadImageCmd     `cmd:"" name:"upload-image" help:"Push a static bitmap to the LCD."`
	SetRGBAllKeys   SetRGBAllKeysCmd   `cmd:"" name:"set-rgb-all-keys" help:"Set every key to one RGB color."`
	CycleLightModes CycleLightModesCmd `cmd:"" name:"cycle-light-modes" help:"Advance to the next built-in lighting profile."`
	SendTime        SendTimeCmd        `cmd:"" name:"send-time" help:"Push the host's current time to the LCD clock."`
	SendTemperature SendTemperatureCmd `cmd:"" name:"send-temperature" help:"Push one temperature sample (0-99)."`
	SendCPU         SendCPUCmd         `cmd:"" name:"send-cpu" help:"Push one CPU utilization sample (0-99)."`
	StartDaemon     StartDaemonCmd     `cmd:"" name:"start-daemon" help:"Run the periodic time/CPU/temperature push loop."`
	ListTempDevices ListTempDevicesCmd `cmd:"" name:"list-temp-devices" help:"List available temperature sensor sources."`
	Dev             DevCmd             `cmd:"" help:"Device diagnostics."`
	SetKeys         SetKeysCmd         `cmd:"" name:"set-keys" help:"Set individual key colors for one animation frame."`
	RemapKeys       RemapKeysCmd       `cmd:"" name:"remap-keys" help:"Remap an internal key index to a USB HID usage code."`
	ShowKeymap      ShowKeymapCmd      `cmd:"" name:"show-keymap" help:"List known keymap entries."`
	Config          ConfigCmd          `cmd:"" help:"CLI configuration file management."`
}
