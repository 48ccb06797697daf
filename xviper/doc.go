// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xviper provides customizations on use of viper for configuration loading.

Configuration comes, in increasing order of precedence, from defaults, an optional file found
in the standard paths or named on the command line, SYNCLAB_ environment variables, and flags.
*/
package xviper
