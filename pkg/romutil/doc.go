/******************************************************************************\
* Scene Virtual Machine                                                        *
*                                                                              *
* Copyright 2020-2025 Leandro Motta Barros                                     *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

// The romutil package contains assorted utilities used in various other svm
// packages. Now, that's a clever way of having a "util" package without
// having a "util" package!
package romutil
